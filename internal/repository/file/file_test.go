package file

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"dsignme/internal/db/dbtest"
	"dsignme/internal/domain"
)

func TestPostgres_StoreAndFetch(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgres(dbtest.Pool(t))

	data := []byte("\x89PNG\r\n\x1a\nfake")
	created, err := repo.Create(ctx, domain.File{Filename: "logo.png", Kind: domain.FileImage, ContentType: "image/png"}, data)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.Size != int64(len(data)) {
		t.Fatalf("unexpected file %+v", created)
	}

	meta, got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if meta.Filename != "logo.png" || meta.Kind != domain.FileImage || !bytes.Equal(got, data) {
		t.Fatalf("unexpected fetch %+v", meta)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := repo.Get(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
