package project

import (
	"context"

	"dsignme/internal/domain"
)

type Repository interface {
	// ListAll returns every project, newest first.
	ListAll(ctx context.Context) ([]domain.Project, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, p domain.Project) (*domain.Project, error)
	Update(ctx context.Context, p domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
