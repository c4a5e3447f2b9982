package repository

import (
	"context"
	"errors"

	"users-api/internal/domain"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email belongs to another user.
	ErrEmailTaken = errors.New("email already taken")
	// ErrTokenTaken is returned when the auth token collides with another user's.
	ErrTokenTaken = errors.New("auth token already taken")
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateAuthToken(ctx context.Context, id int64, token string) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByAuthToken(ctx context.Context, token string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
