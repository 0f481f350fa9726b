package user

import (
	"context"

	"dsignme/internal/domain"
)

// Repository stores administrator accounts. Emails compare case-insensitively.
type Repository interface {
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
