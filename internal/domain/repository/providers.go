package repository

import (
	"context"
	"time"

	"hangar-service/internal/domain/entity"
)

// FlightDataProvider looks up flights by ident at the third-party tracking service.
// date narrows the search to one calendar day when set.
type FlightDataProvider interface {
	LookupFlights(ctx context.Context, ident string, date *time.Time) ([]*entity.ExternalFlightPayload, error)
}

// AirportInfoProvider returns airport metadata for an IATA or ICAO code, or (nil, nil) when unknown.
type AirportInfoProvider interface {
	LookupAirport(ctx context.Context, code string) (*entity.AirportInfo, error)
}

// ImageSearcher searches for aircraft photos.
type ImageSearcher interface {
	SearchImages(ctx context.Context, query entity.ImageQuery) ([]entity.ImageResult, error)
}

// AirlineDirectory is a reference list of airline names keyed by IATA code.
// LookupAirlineName returns "" when the code is unknown.
type AirlineDirectory interface {
	LookupAirlineName(ctx context.Context, code string) (string, error)
}
