package testutil

import (
	"context"
	"sync"
	"time"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/errs"
	"hangar-service/internal/domain/repository"
)

// AirlineRepo is an in-memory AirlineRepository with unique IATA and ICAO codes.
type AirlineRepo struct {
	mu       sync.Mutex
	airlines map[string]*entity.Airline

	// BeforeCreate runs before each insert with the lock released, letting tests interleave a competing writer.
	BeforeCreate func(airline *entity.Airline)
	// HideOnRefetch makes finders return nothing, simulating a winner that vanished after a conflict.
	HideOnRefetch bool
	CreateCalls   int
}

var _ repository.AirlineRepository = (*AirlineRepo)(nil)

func NewAirlineRepo() *AirlineRepo {
	return &AirlineRepo{airlines: make(map[string]*entity.Airline)}
}

// Seed inserts airlines directly, bypassing uniqueness checks.
func (r *AirlineRepo) Seed(airlines ...*entity.Airline) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range airlines {
		if a.ID == "" {
			a.ID = NewID("airline")
		}
		cp := *a
		r.airlines[a.ID] = &cp
	}
}

// All returns copies of every stored airline.
func (r *AirlineRepo) All() []*entity.Airline {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Airline, 0, len(r.airlines))
	for _, a := range r.airlines {
		cp := *a
		out = append(out, &cp)
	}
	return out
}

func (r *AirlineRepo) find(match func(*entity.Airline) bool) *entity.Airline {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.HideOnRefetch && r.CreateCalls > 0 {
		return nil
	}
	for _, a := range r.airlines {
		if match(a) {
			cp := *a
			return &cp
		}
	}
	return nil
}

func (r *AirlineRepo) FindByIATA(_ context.Context, code string) (*entity.Airline, error) {
	return r.find(func(a *entity.Airline) bool { return a.IATACode == code }), nil
}

func (r *AirlineRepo) FindByICAO(_ context.Context, code string) (*entity.Airline, error) {
	return r.find(func(a *entity.Airline) bool { return a.ICAOCode != "" && a.ICAOCode == code }), nil
}

func (r *AirlineRepo) FindByID(_ context.Context, id string) (*entity.Airline, error) {
	return r.find(func(a *entity.Airline) bool { return a.ID == id }), nil
}

func (r *AirlineRepo) Create(_ context.Context, airline *entity.Airline) error {
	if r.BeforeCreate != nil {
		r.BeforeCreate(airline)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.CreateCalls++
	for _, a := range r.airlines {
		if a.IATACode == airline.IATACode || (airline.ICAOCode != "" && a.ICAOCode == airline.ICAOCode) {
			return errs.ErrAlreadyExists
		}
	}
	if airline.ID == "" {
		airline.ID = NewID("airline")
	}
	cp := *airline
	r.airlines[airline.ID] = &cp
	return nil
}

func (r *AirlineRepo) FillMissing(_ context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.airlines[id]
	if !ok {
		return nil
	}
	for field, value := range fields {
		switch field {
		case "icaoCode":
			if a.ICAOCode == "" {
				a.ICAOCode = value.(string)
			}
		case "name":
			if a.Name == "" {
				a.Name = value.(string)
			}
		case "logoUrl":
			if a.LogoURL == "" {
				a.LogoURL = value.(string)
			}
		}
	}
	a.UpdatedAt = time.Now()
	return nil
}

func (r *AirlineRepo) ReplaceSyntheticName(_ context.Context, id, placeholder, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.airlines[id]; ok && a.Name == placeholder {
		a.Name = name
		a.CodeSource = entity.CodeSourceMapped
		a.UpdatedAt = time.Now()
	}
	return nil
}
