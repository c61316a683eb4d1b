package services

import (
	"context"

	"bitwallet/internal/models"
	"bitwallet/internal/validator"

	"github.com/google/uuid"
)

// UserService issues users and their API keys. Keys are opaque bearer
// strings; resolution back to an owner id is the identity collaborator the
// transfer core depends on.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Register(ctx context.Context, username string) (models.User, error) {
	if err := validator.ValidateUsername(username); err != nil {
		return models.User{}, err
	}
	apiKey := username + "-" + uuid.NewString()
	return s.users.Create(ctx, username, apiKey)
}

func (s *UserService) Resolve(ctx context.Context, apiKey string) (int64, error) {
	return s.users.Resolve(ctx, apiKey)
}
