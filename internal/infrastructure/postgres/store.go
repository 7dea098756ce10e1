package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akintayo/reservation/internal/domain/booking"
)

type Store struct{ pool *pgxpool.Pool }

func NewStore(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

// Open builds a pgx pool for databaseURL and verifies connectivity.
func Open(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnLifetime = 5 * time.Minute
	cfg.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func (s *Store) FindOverlapping(ctx context.Context, from, to time.Time) ([]booking.Reservation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT reference, guest_id, arrival, departure, status, created_at, updated_at
		FROM reservations
		WHERE status = $1 AND arrival < $2 AND departure > $3
		ORDER BY arrival ASC
	`, booking.StatusActive, to, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []booking.Reservation
	for rows.Next() {
		var r booking.Reservation
		if err := rows.Scan(&r.Reference, &r.GuestID, &r.Arrival, &r.Departure, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		r.Arrival = booking.Date(r.Arrival)
		r.Departure = booking.Date(r.Departure)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) FindByReference(ctx context.Context, ref string) (booking.Reservation, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT reference, guest_id, arrival, departure, status, created_at, updated_at
		FROM reservations WHERE reference = $1
	`, ref)
	var r booking.Reservation
	if err := row.Scan(&r.Reference, &r.GuestID, &r.Arrival, &r.Departure, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking.Reservation{}, booking.NewNotFound("unable to find reservation with reference %s", ref)
		}
		return booking.Reservation{}, err
	}
	r.Arrival = booking.Date(r.Arrival)
	r.Departure = booking.Date(r.Departure)
	return r, nil
}

func (s *Store) Save(ctx context.Context, r booking.Reservation) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO reservations (reference, guest_id, arrival, departure, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (reference) DO UPDATE
		SET arrival=EXCLUDED.arrival, departure=EXCLUDED.departure,
		    status=EXCLUDED.status, updated_at=EXCLUDED.updated_at
	`, r.Reference, r.GuestID, r.Arrival, r.Departure, r.Status, r.CreatedAt, r.UpdatedAt)
	return err
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM reservations WHERE reference = $1`, ref)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return booking.NewNotFound("unable to find reservation with reference %s", ref)
	}
	return nil
}

func (s *Store) FindGuestByEmail(ctx context.Context, email string) (booking.Guest, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, full_name, created_at FROM guests WHERE email = $1
	`, email)
	var g booking.Guest
	if err := row.Scan(&g.ID, &g.Email, &g.FullName, &g.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking.Guest{}, booking.NewNotFound("unable to find guest with email %s", email)
		}
		return booking.Guest{}, err
	}
	return g, nil
}

func (s *Store) SaveGuest(ctx context.Context, g booking.Guest) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO guests (id, email, full_name, created_at) VALUES ($1,$2,$3,$4)
		ON CONFLICT (email) DO UPDATE SET full_name=EXCLUDED.full_name
	`, g.ID, g.Email, g.FullName, g.CreatedAt)
	return err
}
