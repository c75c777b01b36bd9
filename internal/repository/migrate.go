package repository

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS areas (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		version INTEGER NOT NULL DEFAULT 1,
		CONSTRAINT areas_name_key UNIQUE (name)
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		full_name TEXT NOT NULL,
		email TEXT,
		role TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		area TEXT,
		franchise_name TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		version INTEGER NOT NULL DEFAULT 1,
		CONSTRAINT users_username_key UNIQUE (username),
		CONSTRAINT users_email_key UNIQUE (email),
		CONSTRAINT users_status_check CHECK (status IN ('active', 'inactive', 'suspended'))
	);`,
	`CREATE TABLE IF NOT EXISTS unclaimed (
		id BIGSERIAL PRIMARY KEY,
		trans_id TEXT NOT NULL,
		teller_name TEXT NOT NULL DEFAULT '',
		bet_number TEXT NOT NULL DEFAULT '',
		bet_code TEXT NOT NULL DEFAULT '',
		draw_date TIMESTAMPTZ NOT NULL,
		bet_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
		win_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
		charge_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
		net NUMERIC(14,2) NOT NULL DEFAULT 0,
		mode_of_payment TEXT NOT NULL DEFAULT '',
		collector TEXT NOT NULL DEFAULT '',
		area TEXT NOT NULL DEFAULT '',
		franchise_name TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Unclaimed',
		return_date TIMESTAMPTZ,
		deposit_date TIMESTAMPTZ,
		verification_date TIMESTAMPTZ,
		created_by BIGINT REFERENCES users (id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		version INTEGER NOT NULL DEFAULT 1,
		CONSTRAINT unclaimed_trans_id_key UNIQUE (trans_id),
		CONSTRAINT unclaimed_status_check CHECK (status IN ('Unclaimed', 'Uncollected', 'Collected', 'Cancelled'))
	);`,
	`CREATE INDEX IF NOT EXISTS unclaimed_status_draw_idx ON unclaimed (status, draw_date);`,
	`CREATE TABLE IF NOT EXISTS collections (
		id BIGSERIAL PRIMARY KEY,
		unclaimed_id BIGINT REFERENCES unclaimed (id) ON DELETE SET NULL,
		collector TEXT NOT NULL DEFAULT '',
		area TEXT NOT NULL DEFAULT '',
		franchise_name TEXT NOT NULL DEFAULT '',
		amount NUMERIC(14,2) NOT NULL,
		mode_of_payment TEXT NOT NULL DEFAULT '',
		deposit_date TIMESTAMPTZ NOT NULL,
		received_by BIGINT NOT NULL REFERENCES users (id),
		remarks TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS reports (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		period_start TIMESTAMPTZ NOT NULL,
		period_end TIMESTAMPTZ NOT NULL,
		lines JSONB NOT NULL,
		totals JSONB NOT NULL,
		generated_by BIGINT NOT NULL REFERENCES users (id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
}

// Migrate creates any missing table. Every statement is idempotent.
func (r *Repository) Migrate(ctx context.Context) error {
	ctx, cancel := r.txContext(ctx)
	defer cancel()

	for _, stmt := range schema {
		if _, err := r.dbpool.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}
