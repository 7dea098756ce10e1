package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS guests (
	id TEXT PRIMARY KEY,
	email TEXT UNIQUE NOT NULL,
	full_name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS reservations (
	reference TEXT PRIMARY KEY,
	guest_id TEXT NOT NULL REFERENCES guests(id),
	arrival DATE NOT NULL,
	departure DATE NOT NULL,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CHECK (arrival < departure)
);

CREATE INDEX IF NOT EXISTS idx_reservations_arrival ON reservations(arrival);
CREATE INDEX IF NOT EXISTS idx_guests_email ON guests(email);
`

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)
	return err
}
