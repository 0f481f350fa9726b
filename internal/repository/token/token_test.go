package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"dsignme/internal/db/dbtest"
	"dsignme/internal/domain"
)

func TestPostgres_CreateUpsertGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgres(dbtest.Pool(t))

	tok := Token{Token: "tok-1", Label: "seed", ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second)}
	if err := repo.Create(ctx, tok); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, tok); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	tok.Label = "rotated"
	if err := repo.Upsert(ctx, tok); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err := repo.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Label != "rotated" || !got.ExpiresAt.Equal(tok.ExpiresAt) {
		t.Fatalf("unexpected token %+v", got)
	}

	if err := repo.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "tok-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgres_TokenOwner(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)
	repo := NewPostgres(pool)

	var userID string
	if err := pool.QueryRow(ctx, `INSERT INTO users (email, password_hash) VALUES ('owner@example.com', 'x') RETURNING id::text`).Scan(&userID); err != nil {
		t.Fatalf("insert user: %v", err)
	}

	expires := time.Now().Add(time.Hour)
	if err := repo.Create(ctx, Token{Token: "owned", Label: "login", UserID: userID, ExpiresAt: expires}); err != nil {
		t.Fatalf("create owned: %v", err)
	}
	if err := repo.Create(ctx, Token{Token: "unowned", Label: "seed", ExpiresAt: expires}); err != nil {
		t.Fatalf("create unowned: %v", err)
	}

	owned, err := repo.Get(ctx, "owned")
	if err != nil || owned.UserID != userID {
		t.Fatalf("expected owner %s, got %+v (%v)", userID, owned, err)
	}
	unowned, err := repo.Get(ctx, "unowned")
	if err != nil || unowned.UserID != "" {
		t.Fatalf("expected no owner, got %+v (%v)", unowned, err)
	}

	if _, err := pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := repo.Get(ctx, "owned"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected owned token to go with its user, got %v", err)
	}
}
