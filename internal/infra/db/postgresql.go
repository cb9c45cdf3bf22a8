// Package db opens and manages the PostgreSQL connection behind the
// reconciliation store: companies, fiscal documents, payment complements,
// bank movements and run outcomes all live in this one database.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/concilia/backend/config"
)

const pingTimeout = 2 * time.Second

// Database wraps the GORM handle for the reconciliation store.
type Database struct {
	db  *gorm.DB
	cfg *config.DatabaseConfig
}

// NewPostgresConnection opens the reconciliation store, configures the
// connection pool and verifies the server is reachable before returning.
func NewPostgresConnection(cfg *config.DatabaseConfig) (*Database, error) {
	// SQL logging stays off; a reconciliation run issues one windowed
	// document query per movement and would flood the log.
	gormLogger := logger.Default.LogMode(logger.Silent)

	db, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open reconciliation store: %w", err)
	}

	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}

	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach reconciliation store: %w", err)
	}

	slog.Info("Reconciliation store connected",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)

	return &Database{
		db:  db,
		cfg: cfg,
	}, nil
}

// DB returns the underlying GORM handle.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// HealthCheck reports whether the store answers a ping within the probe
// timeout. It feeds the health endpoint's database status.
func (d *Database) HealthCheck() bool {
	pool, err := d.db.DB()
	if err != nil {
		slog.Error("Reconciliation store health probe failed", "error", err)
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := pool.PingContext(ctx); err != nil {
		slog.Error("Reconciliation store is not answering", "error", err)
		return false
	}
	return true
}

// Close releases the connection pool.
func (d *Database) Close() error {
	pool, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access connection pool: %w", err)
	}
	if err := pool.Close(); err != nil {
		return fmt.Errorf("failed to close reconciliation store: %w", err)
	}

	slog.Info("Reconciliation store connection closed")
	return nil
}

// AutoMigrate creates or updates the store schema for the given models.
func (d *Database) AutoMigrate(models ...interface{}) error {
	if err := d.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate reconciliation store schema: %w", err)
	}
	return nil
}
