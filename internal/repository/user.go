package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agentconnect/profiles-server-go/internal/model"
)

type UserRepository interface {
	// Create always inserts a fresh record; callers are responsible for
	// checking FindByExternalID first.
	Create(ctx context.Context, params model.CreateUserParams) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*model.User, error)
	Count(ctx context.Context) (int, error)
}

type userRepo struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

func NewUserRepository() UserRepository {
	return &userRepo{users: make(map[string]*model.User)}
}

func (r *userRepo) Create(ctx context.Context, params model.CreateUserParams) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	user := &model.User{
		ID:         uuid.NewString(),
		ExternalID: params.ExternalID,
		Email:      params.Email,
		Name:       params.Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.users[user.ID] = user

	return snapshotUser(user), nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return snapshotUser(user), nil
}

func (r *userRepo) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ExternalID == externalID {
			return snapshotUser(user), nil
		}
	}
	return nil, nil
}

func (r *userRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

func snapshotUser(u *model.User) *model.User {
	copied := *u
	return &copied
}
