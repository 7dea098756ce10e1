// Package memory is the in-process Store used by tests and the
// zero-setup dev backend.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/akintayo/reservation/internal/domain/booking"
)

type Store struct {
	mu     sync.RWMutex
	byRef  map[string]booking.Reservation
	guests map[string]booking.Guest // keyed by email
}

func NewStore() *Store {
	return &Store{
		byRef:  make(map[string]booking.Reservation),
		guests: make(map[string]booking.Guest),
	}
}

func (s *Store) FindOverlapping(ctx context.Context, from, to time.Time) ([]booking.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []booking.Reservation
	for _, r := range s.byRef {
		if r.Status != booking.StatusActive {
			continue
		}
		if r.Arrival.Before(to) && r.Departure.After(from) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Arrival.Before(out[j].Arrival) })
	return out, nil
}

func (s *Store) FindByReference(ctx context.Context, ref string) (booking.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return booking.Reservation{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byRef[ref]
	if !ok {
		return booking.Reservation{}, booking.NewNotFound("unable to find reservation with reference %s", ref)
	}
	return r, nil
}

func (s *Store) Save(ctx context.Context, r booking.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byRef[r.Reference] = r
	return nil
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byRef[ref]; !ok {
		return booking.NewNotFound("unable to find reservation with reference %s", ref)
	}
	delete(s.byRef, ref)
	return nil
}

func (s *Store) FindGuestByEmail(ctx context.Context, email string) (booking.Guest, error) {
	if err := ctx.Err(); err != nil {
		return booking.Guest{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.guests[email]
	if !ok {
		return booking.Guest{}, booking.NewNotFound("unable to find guest with email %s", email)
	}
	return g, nil
}

func (s *Store) SaveGuest(ctx context.Context, g booking.Guest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guests[g.Email] = g
	return nil
}
