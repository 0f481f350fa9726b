package contact

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"dsignme/internal/db"
	"dsignme/internal/domain"
	"dsignme/internal/logging"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *logrus.Entry
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *logrus.Entry) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrDiscard(logger)}
}

const selectColumns = `id::text, name, email, message, status, created_at`

func (r *postgresRepo) Create(ctx context.Context, c domain.Contact) (*domain.Contact, error) {
	if c.Status == "" {
		c.Status = domain.ContactNew
	}
	const q = `
INSERT INTO contacts (name, email, message, status)
VALUES ($1, $2, $3, $4)
RETURNING ` + selectColumns
	return r.scanContact(r.pool.QueryRow(ctx, q, c.Name, strings.ToLower(c.Email), c.Message, string(c.Status)))
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Contact, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectColumns+` FROM contacts ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Contact{}
	for rows.Next() {
		c, err := r.scanContact(rows)
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

func (r *postgresRepo) scanContact(row pgx.Row) (*domain.Contact, error) {
	var c domain.Contact
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.Status, &c.CreatedAt); err != nil {
		err = db.Translate(err)
		if err != domain.ErrNotFound {
			r.logger.WithError(err).Error("contact repo: scan")
		}
		return nil, err
	}
	return &c, nil
}
