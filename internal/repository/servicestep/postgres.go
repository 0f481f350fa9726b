package servicestep

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

const selectColumns = `id::text, category_id::text, title, subtitles, created_at, updated_at`

func scanStep(row pgx.Row) (*domain.ServiceStep, error) {
	var s domain.ServiceStep
	if err := row.Scan(&s.ID, &s.CategoryID, &s.Title, &s.Subtitles, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, db.Translate(err)
	}
	if s.Subtitles == nil {
		s.Subtitles = []domain.Subtitle{}
	}
	return &s, nil
}

func (r *postgresRepo) ListByCategory(ctx context.Context, categoryID string) ([]domain.ServiceStep, error) {
	const q = `SELECT ` + selectColumns + ` FROM service_steps WHERE category_id = $1 ORDER BY created_at ASC, id`
	rows, err := r.pool.Query(ctx, q, categoryID)
	if err != nil {
		return nil, db.Translate(err)
	}
	defer rows.Close()

	result := []domain.ServiceStep{}
	for rows.Next() {
		s, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Get(ctx context.Context, id string) (*domain.ServiceStep, error) {
	return scanStep(r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM service_steps WHERE id = $1`, id))
}

func (r *postgresRepo) Create(ctx context.Context, s domain.ServiceStep) (*domain.ServiceStep, error) {
	const q = `
INSERT INTO service_steps (category_id, title, subtitles)
VALUES ($1, $2, $3)
RETURNING ` + selectColumns
	return scanStep(r.pool.QueryRow(ctx, q, s.CategoryID, s.Title, subtitlesOrEmpty(s.Subtitles)))
}

func (r *postgresRepo) Update(ctx context.Context, s domain.ServiceStep) (*domain.ServiceStep, error) {
	const q = `
UPDATE service_steps
SET title = $2, subtitles = $3, updated_at = now()
WHERE id = $1
RETURNING ` + selectColumns
	return scanStep(r.pool.QueryRow(ctx, q, s.ID, s.Title, subtitlesOrEmpty(s.Subtitles)))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM service_steps WHERE id = $1`, id)
	if err != nil {
		return db.Translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func subtitlesOrEmpty(s []domain.Subtitle) []domain.Subtitle {
	if s == nil {
		return []domain.Subtitle{}
	}
	return s
}
