package category

import (
	"context"
	"errors"
	"strings"

	"dsignme/internal/domain"
	"dsignme/internal/repository/category"
)

const (
	errNameRequired = "Category name is required"
	errNameInvalid  = "Category name may only contain letters, numbers, spaces, - and _"
)

type Service struct {
	repo category.Repository
}

func New(repo category.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

// Resolve finds a category by the name used in URLs. An unknown name is a
// validation error since it comes from the caller's path.
func (s *Service) Resolve(ctx context.Context, name string) (*domain.Category, error) {
	c, err := s.repo.GetByName(ctx, NormalizeName(name))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Invalid("Category not found")
	}
	return c, err
}

func (s *Service) Create(ctx context.Context, name string) (*domain.Category, error) {
	name, err := checkName(name)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.Create(ctx, name)
	if errors.Is(err, domain.ErrAlreadyExists) {
		return nil, domain.Invalid("Category already exists")
	}
	return c, err
}

func (s *Service) Update(ctx context.Context, id, name string) (*domain.Category, error) {
	name, err := checkName(name)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.Update(ctx, id, name)
	if errors.Is(err, domain.ErrAlreadyExists) {
		return nil, domain.Invalid("Category name already exists")
	}
	return c, err
}

// Delete removes the category. Its projects and service steps go with it.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// NormalizeName is the stored form of a category name.
func NormalizeName(name string) string {
	return domain.NormalizeCategoryName(strings.TrimSpace(name))
}

func checkName(name string) (string, error) {
	name = NormalizeName(name)
	if name == "" {
		return "", domain.Invalid(errNameRequired)
	}
	if !domain.ValidCategoryName(name) {
		return "", domain.Invalid(errNameInvalid)
	}
	return name, nil
}
