package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLRepo is the SQLite-backed account store.
type SQLRepo struct {
	DB *sql.DB
}

// NewSQLRepo constructs a SQLRepo.
func NewSQLRepo(db *sql.DB) *SQLRepo {
	return &SQLRepo{DB: db}
}

var _ Repo = (*SQLRepo)(nil)

// Create inserts the user and fills in its generated ID and timestamps.
func (r *SQLRepo) Create(ctx context.Context, u *User) error {
	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (email, password, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		u.Email, u.PasswordHash, u.Name, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert user id: %w", err)
	}
	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

// GetByEmail returns the user with the given email, or ErrNotFound.
func (r *SQLRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getBy(ctx,
		`SELECT id, email, password, name, created_at, updated_at
		 FROM users WHERE email = ?`, email)
}

// GetByID returns the user with the given ID, or ErrNotFound.
func (r *SQLRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getBy(ctx,
		`SELECT id, email, password, name, created_at, updated_at
		 FROM users WHERE id = ?`, id)
}

func (r *SQLRepo) getBy(ctx context.Context, query string, arg any) (*User, error) {
	var (
		u    User
		name sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &name, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	u.Name = name.String
	return &u, nil
}

// Update persists name and email changes.
func (r *SQLRepo) Update(ctx context.Context, u *User) error {
	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET email = ?, name = ?, updated_at = ? WHERE id = ?`,
		u.Email, u.Name, now, u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	u.UpdatedAt = now
	return nil
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
