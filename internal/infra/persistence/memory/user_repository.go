// Package memory keeps users in process memory. Data does not survive a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"authapp/internal/domain/entity"
	domainerrors "authapp/internal/domain/errors"
	"authapp/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type userRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*entity.User
	byEmail map[string]uuid.UUID
	now     func() time.Time
}

// NewUserRepository creates an empty in-memory user store.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byID:    make(map[uuid.UUID]*entity.User),
		byEmail: make(map[string]uuid.UUID),
		now:     time.Now,
	}
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return errors.Wrap(err, "generate user id")
	}

	email := entity.NormalizeEmail(user.Email)

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, taken := repo.byEmail[email]; taken {
		return domainerrors.ErrUserAlreadyExists
	}

	now := repo.now().UTC()
	stored := *user
	stored.ID = id
	stored.Email = email
	stored.CreatedAt = now
	stored.UpdatedAt = now

	repo.byID[id] = &stored
	repo.byEmail[email] = id

	*user = stored

	return nil
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	id, ok := repo.byEmail[entity.NormalizeEmail(email)]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return repo.copyOf(id), nil
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if _, ok := repo.byID[id]; !ok {
		return nil, repository.ErrUserNotFound
	}

	return repo.copyOf(id), nil
}

// copyOf must be called with the lock held.
func (repo *userRepository) copyOf(id uuid.UUID) *entity.User {
	user := *repo.byID[id]

	return &user
}
