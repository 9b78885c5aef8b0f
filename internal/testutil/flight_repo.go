package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/errs"
	"hangar-service/internal/domain/repository"
)

// FlightRepo is an in-memory FlightRepository enforcing the per-user, per-day uniqueness of flights.
type FlightRepo struct {
	mu      sync.Mutex
	flights map[string]*entity.Flight

	// SkipDuplicateLookup makes FindDuplicate miss, so only the unique index guards creation.
	SkipDuplicateLookup bool
}

var _ repository.FlightRepository = (*FlightRepo)(nil)

func NewFlightRepo() *FlightRepo {
	return &FlightRepo{flights: make(map[string]*entity.Flight)}
}

// Stored returns copies of all flights including RawSourceData.
func (r *FlightRepo) Stored() []*entity.Flight {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Flight, 0, len(r.flights))
	for _, f := range r.flights {
		cp := *f
		out = append(out, &cp)
	}
	return out
}

func stripRaw(f *entity.Flight) *entity.Flight {
	cp := *f
	cp.RawSourceData = ""
	return &cp
}

func (r *FlightRepo) Create(_ context.Context, flight *entity.Flight) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.flights {
		if f.UserID == flight.UserID && f.AirlineID == flight.AirlineID &&
			f.FlightNumber == flight.FlightNumber && f.DateKey == flight.DateKey {
			return errs.ErrAlreadyExists
		}
	}
	if flight.ID == "" {
		flight.ID = NewID("flight")
	}
	cp := *flight
	r.flights[flight.ID] = &cp
	return nil
}

func (r *FlightRepo) FindDuplicate(_ context.Context, userID, airlineID, flightNumber string, from, to time.Time) (*entity.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SkipDuplicateLookup {
		r.SkipDuplicateLookup = false
		return nil, nil
	}
	for _, f := range r.flights {
		if f.UserID == userID && f.AirlineID == airlineID && f.FlightNumber == flightNumber &&
			!f.Date.Before(from) && f.Date.Before(to) {
			return stripRaw(f), nil
		}
	}
	return nil, nil
}

func (r *FlightRepo) FindByID(_ context.Context, userID, id string) (*entity.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flights[id]
	if !ok || f.UserID != userID {
		return nil, nil
	}
	return stripRaw(f), nil
}

func (r *FlightRepo) ListByUser(_ context.Context, userID string, limit int) ([]*entity.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Flight
	for _, f := range r.flights {
		if f.UserID == userID {
			out = append(out, stripRaw(f))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *FlightRepo) Update(_ context.Context, userID, id string, update entity.FlightUpdate) (*entity.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flights[id]
	if !ok || f.UserID != userID {
		return nil, errs.ErrNotFound
	}
	if update.Notes != nil {
		notes := *update.Notes
		f.Notes = &notes
	}
	if update.Seat != nil {
		seat := *update.Seat
		f.Seat = &seat
	}
	f.UpdatedAt = time.Now()
	return stripRaw(f), nil
}

func (r *FlightRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flights[id]
	if !ok || f.UserID != userID {
		return errs.ErrNotFound
	}
	delete(r.flights, id)
	return nil
}
