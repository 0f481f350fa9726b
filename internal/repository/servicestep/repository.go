package servicestep

import (
	"context"

	"dsignme/internal/domain"
)

type Repository interface {
	ListByCategory(ctx context.Context, categoryID string) ([]domain.ServiceStep, error)
	Get(ctx context.Context, id string) (*domain.ServiceStep, error)
	Create(ctx context.Context, s domain.ServiceStep) (*domain.ServiceStep, error)
	Update(ctx context.Context, s domain.ServiceStep) (*domain.ServiceStep, error)
	Delete(ctx context.Context, id string) error
}
