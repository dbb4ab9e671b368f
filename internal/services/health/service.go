package health

import (
	"context"
	"database/sql"
	"time"
)

// Service encapsulates health-related checks.
type Service struct {
	DB *sql.DB
}

// NewService constructs a new health service. db may be nil when the server
// runs on in-memory repositories.
func NewService(db *sql.DB) *Service {
	return &Service{DB: db}
}

// Status returns a simple health payload. The database field is only
// reported when a database is configured.
func (s *Service) Status(ctx context.Context) map[string]any {
	payload := map[string]any{"ok": true}
	if s.DB != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		payload["db"] = s.DB.PingContext(pingCtx) == nil
	}
	return payload
}
