package token

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

func (r *postgresRepo) Create(ctx context.Context, token Token) error {
	const q = `
INSERT INTO api_tokens (token, label, expires_at, user_id)
VALUES ($1, $2, $3, NULLIF($4, '')::uuid)
`
	if _, err := r.pool.Exec(ctx, q, token.Token, token.Label, token.ExpiresAt, token.UserID); err != nil {
		return db.Translate(err)
	}
	return nil
}

func (r *postgresRepo) Upsert(ctx context.Context, token Token) error {
	const q = `
INSERT INTO api_tokens (token, label, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (token) DO UPDATE
SET label = EXCLUDED.label,
    expires_at = EXCLUDED.expires_at
`
	if _, err := r.pool.Exec(ctx, q, token.Token, token.Label, token.ExpiresAt); err != nil {
		return db.Translate(err)
	}
	return nil
}

func (r *postgresRepo) Get(ctx context.Context, token string) (*Token, error) {
	const q = `
SELECT token, label, COALESCE(user_id::text, ''), expires_at, created_at
FROM api_tokens
WHERE token = $1
LIMIT 1
`
	var out Token
	if err := r.pool.QueryRow(ctx, q, token).Scan(&out.Token, &out.Label, &out.UserID, &out.ExpiresAt, &out.CreatedAt); err != nil {
		return nil, db.Translate(err)
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, token string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM api_tokens WHERE token = $1`, token)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
