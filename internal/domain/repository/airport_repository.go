package repository

import (
	"context"

	"hangar-service/internal/domain/entity"
)

// AirportRepository defines the interface for airport persistence.
type AirportRepository interface {
	FindByIATA(ctx context.Context, code string) (*entity.Airport, error)
	FindByICAO(ctx context.Context, code string) (*entity.Airport, error)
	FindByID(ctx context.Context, id string) (*entity.Airport, error)
	Create(ctx context.Context, airport *entity.Airport) error
	FillMissing(ctx context.Context, id string, fields map[string]interface{}) error
}
