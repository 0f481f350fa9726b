package project

import (
	"context"
	"errors"
	"testing"

	"dsignme/internal/db/dbtest"
	"dsignme/internal/domain"
	"dsignme/internal/repository/category"
)

func TestPostgres_CreateListUpdateDelete(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	cat, err := category.NewPostgres(pool).Create(ctx, "Logo")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	repo := NewPostgres(pool)
	created, err := repo.Create(ctx, domain.Project{
		CategoryID: cat.ID,
		Title:      "Brand mark",
		VideoURL:   "https://youtu.be/abc",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.MediaType != domain.MediaVideoURL || created.FileID != "" {
		t.Fatalf("unexpected project %+v", created)
	}

	list, err := repo.ListByCategory(ctx, cat.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected list %+v", list)
	}

	created.VideoURL = ""
	created.ImageURL = "https://cdn.example/logo.png"
	created.MediaType = ""
	updated, err := repo.Update(ctx, *created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.MediaType != domain.MediaImage || updated.ImageURL != "https://cdn.example/logo.png" {
		t.Fatalf("unexpected update %+v", updated)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_CategoryDeleteCascades(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	cats := category.NewPostgres(pool)
	cat, err := cats.Create(ctx, "Website")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	repo := NewPostgres(pool)
	p, err := repo.Create(ctx, domain.Project{CategoryID: cat.ID, Title: "Landing"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := cats.Delete(ctx, cat.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	if _, err := repo.Get(ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected project to be gone, got %v", err)
	}
}

func TestPostgres_UnknownCategory(t *testing.T) {
	repo := NewPostgres(dbtest.Pool(t))
	_, err := repo.Create(context.Background(), domain.Project{CategoryID: "00000000-0000-0000-0000-000000000000"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
