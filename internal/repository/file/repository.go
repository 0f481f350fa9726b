package file

import (
	"context"

	"dsignme/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, f domain.File, data []byte) (*domain.File, error)
	// Get returns the metadata and the stored bytes.
	Get(ctx context.Context, id string) (*domain.File, []byte, error)
	Delete(ctx context.Context, id string) error
}
