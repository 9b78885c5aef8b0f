package repository

import (
	"context"
	"time"

	"hangar-service/internal/domain/entity"
)

// AircraftRepository defines the interface for aircraft persistence.
type AircraftRepository interface {
	FindByTail(ctx context.Context, tail string) (*entity.Aircraft, error)
	FindByID(ctx context.Context, id string) (*entity.Aircraft, error)
	Create(ctx context.Context, aircraft *entity.Aircraft) error
	FillMissing(ctx context.Context, id string, fields map[string]interface{}) error
	// AddPhotos appends photos whose SourceID is not yet attached and stamps PhotoLastUpdated.
	// It returns how many photos were actually added.
	AddPhotos(ctx context.Context, id string, photos []entity.Photo, updatedAt time.Time) (int, error)
}
