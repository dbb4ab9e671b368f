package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"assigncheck-backend/internal/shared/storage/db"
)

func TestOpenAndMigrate(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.db")

	sqlDB, err := db.Open(ctx, path, db.DefaultOptions())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// Migrations are idempotent.
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}

	var count int
	row := sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users")
	if err := row.Scan(&count); err != nil {
		t.Fatalf("query users table: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty users table, got %d rows", count)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := db.Open(context.Background(), "", db.DefaultOptions()); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
