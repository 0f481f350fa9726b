package servicestep

import (
	"context"
	"strings"

	"dsignme/internal/domain"
	"dsignme/internal/repository/servicestep"
)

// CategoryResolver turns a URL category name into a category.
type CategoryResolver interface {
	Resolve(ctx context.Context, name string) (*domain.Category, error)
}

// Input is the writable part of a service step. CategoryID must name the
// same category as the URL the request was made against.
type Input struct {
	CategoryID string            `json:"categoryId"`
	Title      string            `json:"title"`
	Subtitles  []domain.Subtitle `json:"subtitles"`
}

type Service struct {
	repo       servicestep.Repository
	categories CategoryResolver
}

func New(repo servicestep.Repository, categories CategoryResolver) *Service {
	return &Service{repo: repo, categories: categories}
}

func (s *Service) List(ctx context.Context, categoryName string) ([]domain.ServiceStep, error) {
	cat, err := s.categories.Resolve(ctx, categoryName)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCategory(ctx, cat.ID)
}

func (s *Service) Get(ctx context.Context, categoryName, id string) (*domain.ServiceStep, error) {
	cat, err := s.categories.Resolve(ctx, categoryName)
	if err != nil {
		return nil, err
	}
	return s.inCategory(ctx, cat.ID, id)
}

func (s *Service) Create(ctx context.Context, categoryName string, in Input) (*domain.ServiceStep, error) {
	cat, err := s.categories.Resolve(ctx, categoryName)
	if err != nil {
		return nil, err
	}
	step, err := buildStep(cat.ID, in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, step)
}

func (s *Service) Update(ctx context.Context, categoryName, id string, in Input) (*domain.ServiceStep, error) {
	cat, err := s.categories.Resolve(ctx, categoryName)
	if err != nil {
		return nil, err
	}
	if _, err := s.inCategory(ctx, cat.ID, id); err != nil {
		return nil, err
	}
	step, err := buildStep(cat.ID, in)
	if err != nil {
		return nil, err
	}
	step.ID = id
	return s.repo.Update(ctx, step)
}

func (s *Service) Delete(ctx context.Context, categoryName, id string) error {
	cat, err := s.categories.Resolve(ctx, categoryName)
	if err != nil {
		return err
	}
	if _, err := s.inCategory(ctx, cat.ID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) inCategory(ctx context.Context, categoryID, id string) (*domain.ServiceStep, error) {
	step, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if step.CategoryID != categoryID {
		return nil, domain.ErrNotFound
	}
	return step, nil
}

func buildStep(categoryID string, in Input) (domain.ServiceStep, error) {
	if in.CategoryID == "" {
		return domain.ServiceStep{}, domain.Invalid("Category ID is required")
	}
	if in.CategoryID != categoryID {
		return domain.ServiceStep{}, domain.Invalid("Category ID does not match category name in URL")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.ServiceStep{}, domain.Invalid("Title is required")
	}
	if !domain.HasContent(in.Subtitles) {
		return domain.ServiceStep{}, domain.Invalid("At least one subtitle or heading is required")
	}
	return domain.ServiceStep{
		CategoryID: categoryID,
		Title:      title,
		Subtitles:  domain.CleanSubtitles(in.Subtitles),
	}, nil
}
