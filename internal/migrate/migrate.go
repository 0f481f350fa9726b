// Package migrate applies the embedded schema to the content database.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

type Option func(*settings)

type settings struct {
	logger *logrus.Entry
}

// WithLogger routes migration progress to l at debug level.
func WithLogger(l *logrus.Entry) Option {
	return func(s *settings) { s.logger = l }
}

// Apply brings the schema up to the newest embedded version.
func Apply(ctx context.Context, pool *pgxpool.Pool, opts ...Option) error {
	return withMigrator(ctx, pool, opts, func(m *migrate.Migrate) error {
		return ignoreNoChange(m.Up())
	})
}

// Reset drops every version and applies them again.
func Reset(ctx context.Context, pool *pgxpool.Pool, opts ...Option) error {
	return withMigrator(ctx, pool, opts, func(m *migrate.Migrate) error {
		if err := ignoreNoChange(m.Down()); err != nil {
			return err
		}
		return ignoreNoChange(m.Up())
	})
}

// Version reports the applied schema version. ok is false on an empty
// database.
func Version(ctx context.Context, pool *pgxpool.Pool) (version uint, dirty, ok bool, err error) {
	err = withMigrator(ctx, pool, nil, func(m *migrate.Migrate) error {
		v, d, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			return nil
		}
		if verr != nil {
			return verr
		}
		version, dirty, ok = v, d, true
		return nil
	})
	return version, dirty, ok, err
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func withMigrator(ctx context.Context, pool *pgxpool.Pool, opts []Option, fn func(*migrate.Migrate) error) error {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	src, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	sqlDB, err := sql.Open("pgx", pool.Config().ConnString())
	if err != nil {
		return fmt.Errorf("open sql db: %w", err)
	}
	defer sqlDB.Close()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sql db: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("postgres driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx", driver)
	if err != nil {
		return fmt.Errorf("new migrator: %w", err)
	}
	defer m.Close()
	if s.logger != nil {
		m.Log = logAdapter{s.logger}
	}

	if err := fn(m); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("migrate: %w (each version needs an .up.sql and a .down.sql file)", err)
		}
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// logAdapter satisfies migrate.Logger.
type logAdapter struct {
	entry *logrus.Entry
}

func (l logAdapter) Printf(format string, v ...any) {
	l.entry.Debugf(strings.TrimSuffix(format, "\n"), v...)
}

func (l logAdapter) Verbose() bool {
	return l.entry.Logger.IsLevelEnabled(logrus.DebugLevel)
}
