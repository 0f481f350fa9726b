package category

import (
	"context"

	"dsignme/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	// GetByName matches case-insensitively.
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	Update(ctx context.Context, id, name string) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
