package user

import (
	"context"
	"errors"
	"testing"

	"dsignme/internal/db/dbtest"
	"dsignme/internal/domain"
)

func TestPostgres_CreateLookupUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgres(dbtest.Pool(t))

	created, err := repo.Create(ctx, " Admin@Example.com ", "hash-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.Email != "admin@example.com" {
		t.Fatalf("unexpected user %+v", created)
	}
	if _, err := repo.Create(ctx, "ADMIN@example.com", "hash-2"); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := repo.GetByEmail(ctx, "admin@EXAMPLE.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != created.ID || got.PasswordHash != "hash-1" {
		t.Fatalf("unexpected lookup %+v", got)
	}

	if err := repo.UpdatePassword(ctx, created.ID, "hash-3"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	got, err = repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PasswordHash != "hash-3" {
		t.Fatalf("password not updated: %+v", got)
	}
}

func TestPostgres_Missing(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgres(dbtest.Pool(t))

	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.Get(ctx, "not-a-uuid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for bad id, got %v", err)
	}
	if err := repo.UpdatePassword(ctx, "00000000-0000-0000-0000-000000000000", "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
