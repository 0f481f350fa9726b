package servicestep

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dsignme/internal/domain"
)

type memoryRepo struct {
	seq   int
	items map[string]domain.ServiceStep
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[string]domain.ServiceStep)}
}

func (r *memoryRepo) ListByCategory(_ context.Context, categoryID string) ([]domain.ServiceStep, error) {
	out := []domain.ServiceStep{}
	for _, s := range r.items {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memoryRepo) Get(_ context.Context, id string) (*domain.ServiceStep, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *memoryRepo) Create(_ context.Context, s domain.ServiceStep) (*domain.ServiceStep, error) {
	r.seq++
	s.ID = fmt.Sprintf("step-%d", r.seq)
	r.items[s.ID] = s
	return &s, nil
}

func (r *memoryRepo) Update(_ context.Context, s domain.ServiceStep) (*domain.ServiceStep, error) {
	if _, ok := r.items[s.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	r.items[s.ID] = s
	return &s, nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type stubCategories map[string]string

func (s stubCategories) Resolve(_ context.Context, name string) (*domain.Category, error) {
	id, ok := s[strings.ToLower(name)]
	if !ok {
		return nil, domain.Invalid("Category not found")
	}
	return &domain.Category{ID: id, NameCategory: name}, nil
}

func newService() *Service {
	return New(newMemoryRepo(), stubCategories{"logo": "cat-logo", "website": "cat-web"})
}

func TestCreate_StripsEmptyContent(t *testing.T) {
	svc := newService()
	step, err := svc.Create(context.Background(), "logo", Input{
		CategoryID: "cat-logo",
		Title:      " Discovery ",
		Subtitles: []domain.Subtitle{
			{Text: "Research", Headings: []string{"Brief", ""}},
			{Text: " ", Headings: []string{" "}},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := []domain.Subtitle{{Text: "Research", Headings: []string{"Brief"}}}
	if diff := cmp.Diff(want, step.Subtitles); diff != "" {
		t.Fatalf("subtitles mismatch (-want +got):\n%s", diff)
	}
	if step.Title != "Discovery" {
		t.Fatalf("expected trimmed title, got %q", step.Title)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	content := []domain.Subtitle{{Text: "x"}}

	cases := map[string]Input{
		"Category ID is required":                         {Title: "t", Subtitles: content},
		"Category ID does not match category name in URL": {CategoryID: "cat-web", Title: "t", Subtitles: content},
		"Title is required":                               {CategoryID: "cat-logo", Subtitles: content},
		"At least one subtitle or heading is required":    {CategoryID: "cat-logo", Title: "t", Subtitles: []domain.Subtitle{{Headings: []string{""}}}},
	}
	for msg, in := range cases {
		_, err := svc.Create(ctx, "Logo", in)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) || verr.Message != msg {
			t.Fatalf("expected %q, got %v", msg, err)
		}
	}
}

func TestGetUpdateDelete_ScopedToCategory(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	step, err := svc.Create(ctx, "Logo", Input{CategoryID: "cat-logo", Title: "t", Subtitles: []domain.Subtitle{{Text: "x"}}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(ctx, "Website", step.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from other category, got %v", err)
	}

	updated, err := svc.Update(ctx, "Logo", step.ID, Input{CategoryID: "cat-logo", Title: "new", Subtitles: []domain.Subtitle{{Headings: []string{"h"}}}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "new" || updated.ID != step.ID {
		t.Fatalf("unexpected update %+v", updated)
	}

	if err := svc.Delete(ctx, "Website", step.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from other category, got %v", err)
	}
	if err := svc.Delete(ctx, "Logo", step.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
