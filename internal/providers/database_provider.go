package providers

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"nest/internal/structures"
)

const connectTimeout = 10 * time.Second

func NewDatabaseProvider(conf *structures.Config, logger Logger) (*pgxpool.Pool, func(), error) {
	config, err := pgxpool.ParseConfig(conf.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse database config: %w", err)
	}

	if conf.Database.MaxConns > 0 {
		config.MaxConns = conf.Database.MaxConns
	}
	if conf.Database.MinConns > 0 {
		config.MinConns = conf.Database.MinConns
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Infof(TypeApp, "Connected to PostgreSQL (max conns %d)", config.MaxConns)
	return pool, pool.Close, nil
}

// RunMigrations applies every pending migration found in migrationsFS.
func RunMigrations(databaseURL string, migrationsFS fs.FS, logger Logger) error {
	d, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, databaseURL)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Infof(TypeApp, "Migrations applied: version=%d dirty=%t", version, dirty)
	return nil
}
