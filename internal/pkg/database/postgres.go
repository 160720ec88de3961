package database

import (
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v4/stdlib" // pgx database/sql driver
	"github.com/jmoiron/sqlx"

	"campusdrop/internal/pkg/models"
)

// PostgresClient wraps an sqlx connection pool.
type PostgresClient struct {
	db *sqlx.DB
}

// NewPostgresClient opens a PostgreSQL connection pool via the pgx stdlib
// driver and verifies it with a ping.
func NewPostgresClient(config models.DatabaseConfig) (*PostgresClient, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		config.Username,
		config.Password,
		config.Host,
		config.Port,
		config.Database,
		config.SSLMode,
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if config.MaxConns > 0 {
		db.SetMaxOpenConns(config.MaxConns)
	}
	if config.IdleConns > 0 {
		db.SetMaxIdleConns(config.IdleConns)
	}
	db.SetConnMaxLifetime(1 * time.Hour)

	return &PostgresClient{db: db}, nil
}

// GetDB returns the underlying sqlx pool.
func (p *PostgresClient) GetDB() *sqlx.DB {
	return p.db
}

// Close closes the connection pool.
func (p *PostgresClient) Close() error {
	return p.db.Close()
}
