package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dbarrios89/storeapi/internal/domain/user"
	"github.com/google/uuid"
)

// UsersRepo is an in-memory credential store with the same semantics as
// the postgres one: create-with-uniqueness-check happens under a single
// lock, so two concurrent creates with one email cannot both win.
// Used in tests and local tinkering.
type UsersRepo struct {
	mu      sync.RWMutex
	byEmail map[string]user.User
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		byEmail: make(map[string]user.User),
	}
}

func (r *UsersRepo) Create(ctx context.Context, name, surname, email, passwordHash string) (user.User, error) {
	now := time.Now().UTC()

	u := user.User{
		ID:           uuid.NewString(),
		Name:         name,
		Surname:      surname,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return user.User{}, user.ErrEmailTaken
	}

	r.byEmail[email] = u

	return u, nil
}

// GetByEmail is case-sensitive, like the postgres store.
func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}
