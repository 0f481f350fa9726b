package project

import (
	"context"

	"github.com/jackc/pgx/v5"
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

const selectColumns = `id::text, category_id::text, title, media_kind, image_url, video_url, file_id::text, created_at, updated_at`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	var fileID *string
	if err := row.Scan(&p.ID, &p.CategoryID, &p.Title, &p.MediaType, &p.ImageURL, &p.VideoURL, &fileID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, db.Translate(err)
	}
	if fileID != nil {
		p.FileID = *fileID
	}
	return &p, nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...any) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, db.Translate(err)
	}
	defer rows.Close()

	result := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Project, error) {
	return r.list(ctx, `SELECT `+selectColumns+` FROM projects ORDER BY created_at DESC, id`)
}

func (r *postgresRepo) ListByCategory(ctx context.Context, categoryID string) ([]domain.Project, error) {
	return r.list(ctx, `SELECT `+selectColumns+` FROM projects WHERE category_id = $1 ORDER BY created_at DESC, id`, categoryID)
}

func (r *postgresRepo) Get(ctx context.Context, id string) (*domain.Project, error) {
	return scanProject(r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM projects WHERE id = $1`, id))
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Project) (*domain.Project, error) {
	const q = `
INSERT INTO projects (category_id, title, media_kind, image_url, video_url, file_id)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::uuid)
RETURNING ` + selectColumns
	return scanProject(r.pool.QueryRow(ctx, q, p.CategoryID, p.Title, mediaKind(p), p.ImageURL, p.VideoURL, p.FileID))
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Project) (*domain.Project, error) {
	const q = `
UPDATE projects
SET category_id = $2,
    title = $3,
    media_kind = $4,
    image_url = $5,
    video_url = $6,
    file_id = NULLIF($7, '')::uuid,
    updated_at = now()
WHERE id = $1
RETURNING ` + selectColumns
	return scanProject(r.pool.QueryRow(ctx, q, p.ID, p.CategoryID, p.Title, mediaKind(p), p.ImageURL, p.VideoURL, p.FileID))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return db.Translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mediaKind(p domain.Project) string {
	return string(p.Media().Kind)
}
