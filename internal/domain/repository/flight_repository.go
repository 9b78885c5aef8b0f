package repository

import (
	"context"
	"time"

	"hangar-service/internal/domain/entity"
)

// FlightRepository defines the interface for hangar flight persistence.
// Read methods never populate RawSourceData.
type FlightRepository interface {
	// Create returns errs.ErrAlreadyExists when the per-day uniqueness index rejects the flight.
	Create(ctx context.Context, flight *entity.Flight) error
	// FindDuplicate finds a flight of userID with the same airline and number whose date is in [from, to).
	FindDuplicate(ctx context.Context, userID, airlineID, flightNumber string, from, to time.Time) (*entity.Flight, error)
	FindByID(ctx context.Context, userID, id string) (*entity.Flight, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Flight, error)
	// Update and Delete return errs.ErrNotFound when userID owns no flight with that id.
	Update(ctx context.Context, userID, id string, update entity.FlightUpdate) (*entity.Flight, error)
	Delete(ctx context.Context, userID, id string) error
}
