package users

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryRepo keeps accounts in process memory. It backs development runs
// where no database path is configured, and tests.
type MemoryRepo struct {
	mu      sync.Mutex
	byID    map[int64]*User
	byEmail map[string]int64
	nextID  int64
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[int64]*User),
		byEmail: make(map[string]int64),
		nextID:  1,
	}
}

var _ Repo = (*MemoryRepo)(nil)

func (r *MemoryRepo) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, exists := r.byEmail[key]; exists {
		return ErrDuplicateEmail
	}

	now := time.Now().UTC()
	u.ID = r.nextID
	u.CreatedAt = now
	u.UpdatedAt = now
	r.nextID++

	stored := *u
	r.byID[u.ID] = &stored
	r.byEmail[key] = u.ID
	return nil
}

func (r *MemoryRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *MemoryRepo) GetByID(_ context.Context, id int64) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := *stored
	return &u, nil
}

func (r *MemoryRepo) Update(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[u.ID]
	if !ok {
		return ErrNotFound
	}

	newKey := strings.ToLower(u.Email)
	oldKey := strings.ToLower(stored.Email)
	if newKey != oldKey {
		if _, exists := r.byEmail[newKey]; exists {
			return ErrDuplicateEmail
		}
		delete(r.byEmail, oldKey)
		r.byEmail[newKey] = u.ID
	}

	stored.Email = u.Email
	stored.Name = u.Name
	stored.UpdatedAt = time.Now().UTC()
	u.UpdatedAt = stored.UpdatedAt
	u.CreatedAt = stored.CreatedAt
	u.PasswordHash = stored.PasswordHash
	return nil
}
