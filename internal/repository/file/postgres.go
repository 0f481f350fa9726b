package file

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"dsignme/internal/db"
	"dsignme/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, f domain.File, data []byte) (*domain.File, error) {
	const q = `
INSERT INTO files (filename, kind, content_type, size, data)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, created_at
`
	out := f
	out.Size = int64(len(data))
	if err := r.pool.QueryRow(ctx, q, f.Filename, string(f.Kind), f.ContentType, out.Size, data).Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, db.Translate(err)
	}
	return &out, nil
}

func (r *postgresRepo) Get(ctx context.Context, id string) (*domain.File, []byte, error) {
	const q = `
SELECT id::text, filename, kind, content_type, size, data, created_at
FROM files
WHERE id = $1
`
	var f domain.File
	var data []byte
	if err := r.pool.QueryRow(ctx, q, id).Scan(&f.ID, &f.Filename, &f.Kind, &f.ContentType, &f.Size, &data, &f.CreatedAt); err != nil {
		return nil, nil, db.Translate(err)
	}
	return &f, data, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return db.Translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
