package testutil

import (
	"context"
	"sync"
	"time"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/errs"
	"hangar-service/internal/domain/repository"
)

// AirportRepo is an in-memory AirportRepository with unique IATA and ICAO codes.
type AirportRepo struct {
	mu       sync.Mutex
	airports map[string]*entity.Airport

	BeforeCreate func(airport *entity.Airport)
	CreateCalls  int
}

var _ repository.AirportRepository = (*AirportRepo)(nil)

func NewAirportRepo() *AirportRepo {
	return &AirportRepo{airports: make(map[string]*entity.Airport)}
}

func (r *AirportRepo) Seed(airports ...*entity.Airport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range airports {
		if a.ID == "" {
			a.ID = NewID("airport")
		}
		cp := *a
		r.airports[a.ID] = &cp
	}
}

func (r *AirportRepo) All() []*entity.Airport {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Airport, 0, len(r.airports))
	for _, a := range r.airports {
		cp := *a
		out = append(out, &cp)
	}
	return out
}

func (r *AirportRepo) find(match func(*entity.Airport) bool) *entity.Airport {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.airports {
		if match(a) {
			cp := *a
			return &cp
		}
	}
	return nil
}

func (r *AirportRepo) FindByIATA(_ context.Context, code string) (*entity.Airport, error) {
	return r.find(func(a *entity.Airport) bool { return a.IATACode == code }), nil
}

func (r *AirportRepo) FindByICAO(_ context.Context, code string) (*entity.Airport, error) {
	return r.find(func(a *entity.Airport) bool { return a.ICAOCode != "" && a.ICAOCode == code }), nil
}

func (r *AirportRepo) FindByID(_ context.Context, id string) (*entity.Airport, error) {
	return r.find(func(a *entity.Airport) bool { return a.ID == id }), nil
}

func (r *AirportRepo) Create(_ context.Context, airport *entity.Airport) error {
	if r.BeforeCreate != nil {
		r.BeforeCreate(airport)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.CreateCalls++
	for _, a := range r.airports {
		if a.IATACode == airport.IATACode || (airport.ICAOCode != "" && a.ICAOCode == airport.ICAOCode) {
			return errs.ErrAlreadyExists
		}
	}
	if airport.ID == "" {
		airport.ID = NewID("airport")
	}
	cp := *airport
	r.airports[airport.ID] = &cp
	return nil
}

func (r *AirportRepo) FillMissing(_ context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.airports[id]
	if !ok {
		return nil
	}
	for field, value := range fields {
		if isEmptyValue(value) {
			continue
		}
		switch field {
		case "icaoCode":
			if a.ICAOCode == "" {
				a.ICAOCode = value.(string)
			}
		case "name":
			if a.Name == "" {
				a.Name = value.(string)
			}
		case "city":
			if a.City == "" {
				a.City = value.(string)
			}
		}
	}
	a.UpdatedAt = time.Now()
	return nil
}
