package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"assigncheck-backend/internal/shared/server/middleware"
	"assigncheck-backend/internal/shared/server/respond"
	"assigncheck-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the users service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches auth routes to the router group. Register and
// login are public; the rest require a valid session token.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/auth")
	grp.POST("/register", h.register)
	grp.POST("/login", h.login)

	protected := grp.Group("")
	protected.Use(authMW)
	protected.GET("/me", h.me)
	protected.PUT("/profile", h.updateProfile)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	u, token, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	case errors.Is(err, ErrDuplicateEmail):
		respond.Error(c, http.StatusConflict, "conflict", "email already registered", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to register", nil)
		return
	}

	telemetry.Info("user.registered", map[string]any{
		"user_id":    u.ID,
		"request_id": c.GetString("requestId"),
	})
	respond.Created(c, gin.H{
		"message": "account created",
		"user":    u,
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	u, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid email or password", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		return
	}

	respond.OK(c, gin.H{"message": "login successful", "user": u, "token": token})
}

func (h *Handler) me(c *gin.Context) {
	id := middleware.UserIDFromContext(c)
	if id == 0 {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	u, err := h.Svc.GetByID(c.Request.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}

	respond.OK(c, gin.H{"user": u})
}

type profileRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	id := middleware.UserIDFromContext(c)
	if id == 0 {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), id, req.Email, req.Name)
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	case errors.Is(err, ErrDuplicateEmail):
		respond.Error(c, http.StatusConflict, "conflict", "email already registered", nil)
		return
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		return
	}

	respond.OK(c, gin.H{"message": "profile updated", "user": u})
}
