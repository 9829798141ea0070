package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func New(connStr string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS imports (
		id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		company_id      TEXT NOT NULL,
		file_name       TEXT NOT NULL,
		idempotency_key TEXT,
		record_count    INTEGER NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (company_id, idempotency_key)
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		import_id     UUID NOT NULL REFERENCES imports(id) ON DELETE CASCADE,
		sale_date     TIMESTAMPTZ NOT NULL,
		product_code  TEXT NOT NULL,
		branch        TEXT NOT NULL,
		description   TEXT NOT NULL,
		quantity      BIGINT NOT NULL CHECK (quantity >= 0),
		unit_value    NUMERIC NOT NULL,
		total_value   NUMERIC NOT NULL,
		customer_name TEXT NOT NULL,
		tax_id        TEXT NOT NULL,
		type          TEXT NOT NULL,
		status        TEXT NOT NULL,
		company_id    TEXT NOT NULL,
		file_name     TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS sales_company_date_idx ON sales (company_id, sale_date)`,
}

// Migrate creates the tables the API needs. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	return nil
}
