package store

import (
	"context"
	"database/sql"
	"errors"

	"bitwallet/internal/models"

	"github.com/lib/pq"
)

// UserStore is the identity collaborator: it issues users and resolves opaque
// API keys back to owner ids.
type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, username, apiKey string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		INSERT INTO users (username, api_key)
		VALUES ($1, $2)
		RETURNING id, username, api_key, created_at
	`, username, apiKey)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return models.User{}, ErrUsernameTaken
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserStore) Resolve(ctx context.Context, apiKey string) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, `SELECT id FROM users WHERE api_key = $1`, apiKey)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}
