package contact

import (
	"context"

	"dsignme/internal/domain"
)

// Repository persists and fetches contact messages.
type Repository interface {
	Create(ctx context.Context, c domain.Contact) (*domain.Contact, error)
	// List returns messages newest first.
	List(ctx context.Context) ([]domain.Contact, error)
}
