package users

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"assigncheck-backend/internal/shared/auth"
)

var (
	// ErrInvalidInput marks validation failures on registration or profile
	// updates. Handlers map it to 400.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials is returned on login with a wrong email or
	// password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const minPasswordLen = 6

// Service implements account registration, login, and profile management.
type Service struct {
	Repo      Repo
	JWTSecret []byte
}

// NewService constructs a Service.
func NewService(repo Repo, jwtSecret []byte) *Service {
	return &Service{Repo: repo, JWTSecret: jwtSecret}
}

// Register creates an account and returns it with a fresh session token.
func (s *Service) Register(ctx context.Context, email, password, name string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	switch {
	case email == "" || !strings.Contains(email, "@"):
		return nil, "", fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	case len(password) < minPasswordLen:
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.token(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies the credentials and returns the account with a session
// token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.token(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// GetByID returns the account for an authenticated session.
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.Repo.GetByID(ctx, id)
}

// UpdateProfile changes the account's name and, optionally, email.
func (s *Service) UpdateProfile(ctx context.Context, id int64, email, name string) (*User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		if !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
		}
		u.Email = email
	}
	u.Name = strings.TrimSpace(name)

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) token(u *User) (string, error) {
	token, err := auth.Sign(strconv.FormatInt(u.ID, 10), u.Email, s.JWTSecret, auth.DefaultTTL)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
