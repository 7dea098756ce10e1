// Package sqlite backs the Store with a local file, for single-node
// deploys that do not want to run Postgres.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/akintayo/reservation/internal/domain/booking"
)

const dateLayout = "2006-01-02"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS guests (
	id TEXT PRIMARY KEY,
	email TEXT UNIQUE NOT NULL,
	full_name TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS reservations (
	reference TEXT PRIMARY KEY,
	guest_id TEXT NOT NULL REFERENCES guests(id),
	arrival TEXT NOT NULL,
	departure TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	CHECK (arrival < departure)
);

CREATE INDEX IF NOT EXISTS idx_reservations_arrival ON reservations(arrival);
`

type Store struct{ db *sql.DB }

func Open(ctx context.Context, file string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	db, err := sql.Open("sqlite3", file+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// a single writer keeps SQLITE_BUSY out of the critical section
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) FindOverlapping(ctx context.Context, from, to time.Time) ([]booking.Reservation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT reference, guest_id, arrival, departure, status, created_at, updated_at
		FROM reservations
		WHERE status = ? AND arrival < ? AND departure > ?
		ORDER BY arrival ASC
	`, booking.StatusActive, formatDate(to), formatDate(from))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []booking.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) FindByReference(ctx context.Context, ref string) (booking.Reservation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT reference, guest_id, arrival, departure, status, created_at, updated_at
		FROM reservations WHERE reference = ?
	`, ref)
	r, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.Reservation{}, booking.NewNotFound("unable to find reservation with reference %s", ref)
		}
		return booking.Reservation{}, err
	}
	return r, nil
}

func (s *Store) Save(ctx context.Context, r booking.Reservation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reservations (reference, guest_id, arrival, departure, status, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT (reference) DO UPDATE
		SET arrival=excluded.arrival, departure=excluded.departure,
		    status=excluded.status, updated_at=excluded.updated_at
	`, r.Reference, r.GuestID, formatDate(r.Arrival), formatDate(r.Departure), r.Status, r.CreatedAt, r.UpdatedAt)
	return err
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reservations WHERE reference = ?`, ref)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return booking.NewNotFound("unable to find reservation with reference %s", ref)
	}
	return nil
}

func (s *Store) FindGuestByEmail(ctx context.Context, email string) (booking.Guest, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, full_name, created_at FROM guests WHERE email = ?
	`, email)
	var g booking.Guest
	if err := row.Scan(&g.ID, &g.Email, &g.FullName, &g.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.Guest{}, booking.NewNotFound("unable to find guest with email %s", email)
		}
		return booking.Guest{}, err
	}
	return g, nil
}

func (s *Store) SaveGuest(ctx context.Context, g booking.Guest) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO guests (id, email, full_name, created_at) VALUES (?,?,?,?)
		ON CONFLICT (email) DO UPDATE SET full_name=excluded.full_name
	`, g.ID, g.Email, g.FullName, g.CreatedAt)
	return err
}

type scanner interface{ Scan(dest ...any) error }

func scanReservation(row scanner) (booking.Reservation, error) {
	var (
		r                  booking.Reservation
		arrival, departure string
	)
	if err := row.Scan(&r.Reference, &r.GuestID, &arrival, &departure, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return booking.Reservation{}, err
	}
	var err error
	if r.Arrival, err = time.ParseInLocation(dateLayout, arrival, time.UTC); err != nil {
		return booking.Reservation{}, err
	}
	if r.Departure, err = time.ParseInLocation(dateLayout, departure, time.UTC); err != nil {
		return booking.Reservation{}, err
	}
	return r, nil
}

func formatDate(t time.Time) string { return booking.Date(t).Format(dateLayout) }
