package repository

import (
	"context"

	"hangar-service/internal/domain/entity"
)

// AirlineRepository defines the interface for airline persistence.
// Finders return (nil, nil) when nothing matches.
type AirlineRepository interface {
	FindByIATA(ctx context.Context, code string) (*entity.Airline, error)
	FindByICAO(ctx context.Context, code string) (*entity.Airline, error)
	FindByID(ctx context.Context, id string) (*entity.Airline, error)
	// Create inserts a new airline and returns errs.ErrAlreadyExists on a unique index violation.
	Create(ctx context.Context, airline *entity.Airline) error
	// FillMissing sets each field only where the stored value is absent or empty.
	FillMissing(ctx context.Context, id string, fields map[string]interface{}) error
	// ReplaceSyntheticName overwrites a name that is still the synthetic placeholder.
	ReplaceSyntheticName(ctx context.Context, id, placeholder, name string) error
}
