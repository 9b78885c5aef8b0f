package testutil

import (
	"context"
	"sync"
	"time"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/repository"
)

// FlightDataProvider returns canned payloads.
type FlightDataProvider struct {
	Flights []*entity.ExternalFlightPayload
	Err     error

	mu    sync.Mutex
	Calls []string
}

var _ repository.FlightDataProvider = (*FlightDataProvider)(nil)

func (p *FlightDataProvider) LookupFlights(ctx context.Context, ident string, _ *time.Time) ([]*entity.ExternalFlightPayload, error) {
	p.mu.Lock()
	p.Calls = append(p.Calls, ident)
	p.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.Flights, p.Err
}

// AirportInfoProvider serves airports from a map keyed by IATA or ICAO code.
type AirportInfoProvider struct {
	Airports map[string]*entity.AirportInfo
	Err      error

	mu    sync.Mutex
	calls int
}

var _ repository.AirportInfoProvider = (*AirportInfoProvider)(nil)

func (p *AirportInfoProvider) LookupAirport(_ context.Context, code string) (*entity.AirportInfo, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Airports[code], nil
}

func (p *AirportInfoProvider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// ImageSearcher returns results keyed by the query; unmatched queries return Default.
type ImageSearcher struct {
	Results map[entity.ImageQuery][]entity.ImageResult
	Default []entity.ImageResult
	Err     error
	// Block, when set, holds every search until it is closed.
	Block chan struct{}

	mu      sync.Mutex
	Queries []entity.ImageQuery
}

var _ repository.ImageSearcher = (*ImageSearcher)(nil)

func (s *ImageSearcher) SearchImages(ctx context.Context, query entity.ImageQuery) ([]entity.ImageResult, error) {
	s.mu.Lock()
	s.Queries = append(s.Queries, query)
	s.mu.Unlock()

	if s.Block != nil {
		select {
		case <-s.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if res, ok := s.Results[query]; ok {
		return res, nil
	}
	return s.Default, nil
}

func (s *ImageSearcher) QueryLog() []entity.ImageQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.ImageQuery(nil), s.Queries...)
}

// AirlineDirectory serves airline names from a map keyed by IATA code.
type AirlineDirectory struct {
	Names map[string]string
	Err   error
}

var _ repository.AirlineDirectory = (*AirlineDirectory)(nil)

func (d *AirlineDirectory) LookupAirlineName(_ context.Context, code string) (string, error) {
	if d.Err != nil {
		return "", d.Err
	}
	return d.Names[code], nil
}
