package category

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

const selectColumns = `id::text, name_category, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(row scanner) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.NameCategory, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, db.Translate(err)
	}
	return &c, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectColumns+` FROM categories ORDER BY name_category ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Get(ctx context.Context, id string) (*domain.Category, error) {
	return scanCategory(r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM categories WHERE id = $1`, id))
}

func (r *postgresRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return scanCategory(r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM categories WHERE lower(name_category) = lower($1)`, name))
}

func (r *postgresRepo) Create(ctx context.Context, name string) (*domain.Category, error) {
	const q = `
INSERT INTO categories (name_category)
VALUES ($1)
RETURNING ` + selectColumns
	return scanCategory(r.pool.QueryRow(ctx, q, name))
}

func (r *postgresRepo) Update(ctx context.Context, id, name string) (*domain.Category, error) {
	const q = `
UPDATE categories
SET name_category = $2, updated_at = now()
WHERE id = $1
RETURNING ` + selectColumns
	return scanCategory(r.pool.QueryRow(ctx, q, id, name))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return db.Translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
