package testutil

import (
	"context"
	"sync"
	"time"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/errs"
	"hangar-service/internal/domain/repository"
)

// AircraftRepo is an in-memory AircraftRepository with unique tail numbers.
type AircraftRepo struct {
	mu       sync.Mutex
	aircraft map[string]*entity.Aircraft

	// BeforeCreate runs before each insert with the lock released, letting tests interleave a competing writer.
	BeforeCreate func(aircraft *entity.Aircraft)
	// HideOnRefetch makes finders return nothing once an insert was attempted.
	HideOnRefetch bool
	CreateCalls   int
}

var _ repository.AircraftRepository = (*AircraftRepo)(nil)

func NewAircraftRepo() *AircraftRepo {
	return &AircraftRepo{aircraft: make(map[string]*entity.Aircraft)}
}

func (r *AircraftRepo) Seed(aircraft ...*entity.Aircraft) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range aircraft {
		if a.ID == "" {
			a.ID = NewID("aircraft")
		}
		r.aircraft[a.ID] = clone(a)
	}
}

func (r *AircraftRepo) All() []*entity.Aircraft {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Aircraft, 0, len(r.aircraft))
	for _, a := range r.aircraft {
		out = append(out, clone(a))
	}
	return out
}

func clone(a *entity.Aircraft) *entity.Aircraft {
	cp := *a
	cp.Photos = append([]entity.Photo(nil), a.Photos...)
	if a.PhotoLastUpdated != nil {
		t := *a.PhotoLastUpdated
		cp.PhotoLastUpdated = &t
	}
	return &cp
}

func (r *AircraftRepo) find(match func(*entity.Aircraft) bool) *entity.Aircraft {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.HideOnRefetch && r.CreateCalls > 0 {
		return nil
	}
	for _, a := range r.aircraft {
		if match(a) {
			return clone(a)
		}
	}
	return nil
}

func (r *AircraftRepo) FindByTail(_ context.Context, tail string) (*entity.Aircraft, error) {
	return r.find(func(a *entity.Aircraft) bool { return a.TailNumber == tail }), nil
}

func (r *AircraftRepo) FindByID(_ context.Context, id string) (*entity.Aircraft, error) {
	return r.find(func(a *entity.Aircraft) bool { return a.ID == id }), nil
}

func (r *AircraftRepo) Create(_ context.Context, aircraft *entity.Aircraft) error {
	if r.BeforeCreate != nil {
		r.BeforeCreate(aircraft)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.CreateCalls++
	for _, a := range r.aircraft {
		if a.TailNumber == aircraft.TailNumber {
			return errs.ErrAlreadyExists
		}
	}
	if aircraft.ID == "" {
		aircraft.ID = NewID("aircraft")
	}
	r.aircraft[aircraft.ID] = clone(aircraft)
	return nil
}

func (r *AircraftRepo) FillMissing(_ context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.aircraft[id]
	if !ok {
		return nil
	}
	for field, value := range fields {
		if isEmptyValue(value) {
			continue
		}
		switch field {
		case "aircraftType":
			if a.AircraftType == "" {
				a.AircraftType = value.(string)
			}
		case "airlineId":
			if a.AirlineID == "" {
				a.AirlineID = value.(string)
			}
		case "manufacturer":
			if a.Manufacturer == "" {
				a.Manufacturer = value.(string)
			}
		case "model":
			if a.Model == "" {
				a.Model = value.(string)
			}
		}
	}
	return nil
}

func (r *AircraftRepo) AddPhotos(_ context.Context, id string, photos []entity.Photo, updatedAt time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.aircraft[id]
	if !ok {
		return 0, errs.ErrNotFound
	}
	added := 0
	for _, p := range photos {
		if a.HasPhoto(p.SourceID) {
			continue
		}
		a.Photos = append(a.Photos, p)
		added++
	}
	t := updatedAt
	a.PhotoLastUpdated = &t
	a.UpdatedAt = updatedAt
	return added, nil
}
