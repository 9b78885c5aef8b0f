package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/errs"
	"hangar-service/internal/domain/repository"
	"hangar-service/pkg/logger"
	"hangar-service/pkg/metrics"
	"hangar-service/pkg/utils"
)

const defaultListLimit = 100

// FlightOptions are the user-supplied fields stored with a new flight.
type FlightOptions struct {
	Seat  *string
	Notes *string
}

// AddFlightRequest asks to look up a flight by ident and add it to the caller's hangar.
type AddFlightRequest struct {
	Ident string
	Date  *time.Time // departure day; today when nil
	Time  string     // optional departure time as HH:MM, narrows the pick between same-day candidates
	Seat  *string
	Notes *string
}

// HangarService assembles flights from provider data and manages each user's logged flights.
type HangarService struct {
	flightRepo   repository.FlightRepository
	airlineRepo  repository.AirlineRepository
	airportRepo  repository.AirportRepository
	aircraftRepo repository.AircraftRepository
	flightData   repository.FlightDataProvider
	airlines     *AirlineResolver
	airports     *AirportResolver
	aircraft     *AircraftResolver
	enricher     *PhotoEnricher
	clock        utils.Clock
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewHangarService creates a new hangar service
func NewHangarService(
	flightRepo repository.FlightRepository,
	airlineRepo repository.AirlineRepository,
	airportRepo repository.AirportRepository,
	aircraftRepo repository.AircraftRepository,
	flightData repository.FlightDataProvider,
	airlines *AirlineResolver,
	airports *AirportResolver,
	aircraft *AircraftResolver,
	enricher *PhotoEnricher,
	clock utils.Clock,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *HangarService {
	return &HangarService{
		flightRepo:   flightRepo,
		airlineRepo:  airlineRepo,
		airportRepo:  airportRepo,
		aircraftRepo: aircraftRepo,
		flightData:   flightData,
		airlines:     airlines,
		airports:     airports,
		aircraft:     aircraft,
		enricher:     enricher,
		clock:        clock,
		metrics:      metrics,
		logger:       logger,
	}
}

// CreateFlight resolves the payload's airline, aircraft and airports and stores the flight for userID.
// A flight with the same airline and number on the same UTC day yields *errs.DuplicateFlightError.
// Entities resolved before a failure are kept; resolution is idempotent so a retry reuses them.
func (s *HangarService) CreateFlight(ctx context.Context, userID string, payload *entity.ExternalFlightPayload, opts FlightOptions) (*entity.Flight, error) {
	start := time.Now()
	if payload == nil {
		return nil, &errs.InsufficientDataError{Entity: "flight", Detail: "empty payload"}
	}
	if strings.TrimSpace(userID) == "" {
		return nil, &errs.InsufficientDataError{Entity: "flight", Detail: "missing user"}
	}

	ident, err := utils.ParseIdent(payload.Ident)
	if err != nil {
		return nil, err
	}

	switch {
	case payload.Aircraft.IsEmpty():
		return nil, &errs.InsufficientDataError{Entity: "aircraft", Detail: "payload has no aircraft"}
	case !payload.Origin.HasCode():
		return nil, &errs.InsufficientDataError{Entity: "airport", Detail: "payload has no origin"}
	case !payload.Destination.HasCode():
		return nil, &errs.InsufficientDataError{Entity: "airport", Detail: "payload has no destination"}
	}

	airline, err := s.airlines.Resolve(ctx, ident.AirlineCode)
	if err != nil {
		return nil, fmt.Errorf("resolve airline: %w", err)
	}

	var (
		aircraft            *entity.Aircraft
		origin, destination *entity.Airport
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		aircraft, err = s.aircraft.Resolve(gctx, payload.Aircraft, airline)
		if err != nil {
			return fmt.Errorf("resolve aircraft: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		origin, err = s.airports.Resolve(gctx, payload.Origin)
		if err != nil {
			return fmt.Errorf("resolve origin: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		destination, err = s.airports.Resolve(gctx, payload.Destination)
		if err != nil {
			return fmt.Errorf("resolve destination: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	times := NormalizeTimes(payload)
	date, ok := FlightDate(times)
	if !ok {
		date = s.clock.Now().UTC()
		s.logger.Warn("Flight has no departure time, using current time", "ident", payload.Ident, "userID", userID)
	}

	from, to := dayBounds(date)
	existing, err := s.flightRepo.FindDuplicate(ctx, userID, airline.ID, ident.FlightNumber, from, to)
	if err != nil {
		return nil, fmt.Errorf("check duplicate flight: %w", err)
	}
	if existing != nil {
		s.metrics.DuplicateFlights.Inc()
		return nil, &errs.DuplicateFlightError{ExistingID: existing.ID, Date: existing.Date}
	}

	now := s.clock.Now()
	flight := &entity.Flight{
		UserID:               userID,
		Ident:                payload.Ident,
		FlightNumber:         ident.FlightNumber,
		AirlineID:            airline.ID,
		Date:                 date,
		DateKey:              entity.DateKeyFor(date),
		OriginAirportID:      origin.ID,
		DestinationAirportID: destination.ID,
		AircraftID:           aircraft.ID,
		Times:                times,
		Notes:                opts.Notes,
		Seat:                 opts.Seat,
		RawSourceData:        string(payload.Raw),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.flightRepo.Create(ctx, flight); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			s.metrics.DuplicateFlights.Inc()
			dupErr := &errs.DuplicateFlightError{Date: date}
			if winner, ferr := s.flightRepo.FindDuplicate(ctx, userID, airline.ID, ident.FlightNumber, from, to); ferr == nil && winner != nil {
				dupErr.ExistingID = winner.ID
			}
			return nil, dupErr
		}
		s.metrics.ErrorsCount.WithLabelValues("create_flight").Inc()
		return nil, fmt.Errorf("create flight: %w", err)
	}

	s.metrics.FlightsCreated.Inc()
	s.metrics.FlightCreationTime.Observe(time.Since(start).Seconds())
	s.logger.Info("Flight added to hangar",
		"userID", userID,
		"flightID", flight.ID,
		"ident", ident.String(),
		"date", flight.DateKey,
	)

	flight.RawSourceData = ""
	return flight, nil
}

// AddToHangar looks the ident up at the flight data provider, picks the candidate closest to the
// requested departure and stores it with CreateFlight.
func (s *HangarService) AddToHangar(ctx context.Context, userID string, req AddFlightRequest) (*entity.Flight, error) {
	candidates, err := s.SearchFlights(ctx, req.Ident, req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, errs.ErrFlightNotFound
	}
	return s.CreateFlight(ctx, userID, candidates[0], FlightOptions{Seat: req.Seat, Notes: req.Notes})
}

// SearchFlights returns provider candidates for ident ordered by distance to the requested departure.
func (s *HangarService) SearchFlights(ctx context.Context, rawIdent string, date *time.Time, departureTime string) ([]*entity.ExternalFlightPayload, error) {
	ident, err := utils.ParseIdent(rawIdent)
	if err != nil {
		return nil, err
	}

	target, err := s.targetDeparture(date, departureTime)
	if err != nil {
		return nil, err
	}

	candidates, err := s.flightData.LookupFlights(ctx, ident.String(), date)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("lookup_flights").Inc()
		s.logger.Error("Flight lookup failed", "ident", ident.String(), "error", err)
		return nil, fmt.Errorf("%w: %w", errs.ErrLookupFailed, err)
	}
	if len(candidates) == 0 {
		return nil, errs.ErrFlightNotFound
	}

	sorted := make([]*entity.ExternalFlightPayload, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return departureDistance(sorted[i], target) < departureDistance(sorted[j], target)
	})
	return sorted, nil
}

func (s *HangarService) targetDeparture(date *time.Time, departureTime string) (time.Time, error) {
	target := s.clock.Now().UTC()
	if date != nil {
		d := date.UTC()
		target = time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
	}
	if departureTime == "" {
		return target, nil
	}

	hm, err := time.Parse("15:04", departureTime)
	if err != nil {
		return time.Time{}, &errs.InsufficientDataError{Entity: "flight", Detail: fmt.Sprintf("invalid departure time %q", departureTime)}
	}
	return time.Date(target.Year(), target.Month(), target.Day(), hm.Hour(), hm.Minute(), 0, 0, time.UTC), nil
}

func departureDistance(p *entity.ExternalFlightPayload, target time.Time) time.Duration {
	dep, ok := FlightDate(NormalizeTimes(p))
	if !ok {
		return time.Duration(1<<63 - 1)
	}
	d := dep.Sub(target)
	if d < 0 {
		d = -d
	}
	return d
}

// ListFlights returns the user's flights, most recent first.
func (s *HangarService) ListFlights(ctx context.Context, userID string, limit int) ([]*entity.Flight, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	flights, err := s.flightRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	return flights, nil
}

// GetFlight returns one of the user's flights with its airline, airports and aircraft.
func (s *HangarService) GetFlight(ctx context.Context, userID, id string) (*entity.FlightDetails, error) {
	flight, err := s.flightRepo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get flight: %w", err)
	}
	if flight == nil {
		return nil, errs.ErrNotFound
	}

	details := &entity.FlightDetails{Flight: *flight}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		details.Airline, err = s.airlineRepo.FindByID(gctx, flight.AirlineID)
		return err
	})
	g.Go(func() (err error) {
		details.Origin, err = s.airportRepo.FindByID(gctx, flight.OriginAirportID)
		return err
	})
	g.Go(func() (err error) {
		details.Destination, err = s.airportRepo.FindByID(gctx, flight.DestinationAirportID)
		return err
	})
	g.Go(func() (err error) {
		details.Aircraft, err = s.aircraftRepo.FindByID(gctx, flight.AircraftID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load flight references: %w", err)
	}
	return details, nil
}

// UpdateFlight changes the notes and seat of one of the user's flights.
func (s *HangarService) UpdateFlight(ctx context.Context, userID, id string, update entity.FlightUpdate) (*entity.Flight, error) {
	flight, err := s.flightRepo.Update(ctx, userID, id, update)
	if err != nil {
		return nil, fmt.Errorf("update flight: %w", err)
	}
	return flight, nil
}

// DeleteFlight removes one of the user's flights. Shared airline, airport and aircraft records stay.
func (s *HangarService) DeleteFlight(ctx context.Context, userID, id string) error {
	if err := s.flightRepo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete flight: %w", err)
	}
	s.logger.Info("Flight removed from hangar", "userID", userID, "flightID", id)
	return nil
}

// RefreshAircraftPhotos forces a photo search for the aircraft with the given tail, bypassing cached results.
func (s *HangarService) RefreshAircraftPhotos(ctx context.Context, tail string) (*entity.Aircraft, error) {
	tail = normalizeTail(tail)
	if tail == "" {
		return nil, errs.ErrNotFound
	}

	aircraft, err := s.aircraftRepo.FindByTail(ctx, tail)
	if err != nil {
		return nil, fmt.Errorf("find aircraft: %w", err)
	}
	if aircraft == nil {
		return nil, errs.ErrNotFound
	}

	var airline *entity.Airline
	if aircraft.AirlineID != "" {
		if airline, err = s.airlineRepo.FindByID(ctx, aircraft.AirlineID); err != nil {
			s.logger.Warn("Failed to load aircraft airline", "tail", tail, "error", err)
		}
	}

	if s.enricher != nil {
		if _, err := s.enricher.Refresh(ctx, aircraft, airline, true); err != nil {
			s.logger.Warn("Forced photo refresh failed", "tail", tail, "error", err)
		}
	}

	refreshed, err := s.aircraftRepo.FindByID(ctx, aircraft.ID)
	if err != nil {
		return nil, fmt.Errorf("reload aircraft: %w", err)
	}
	if refreshed == nil {
		return nil, errs.ErrNotFound
	}
	return refreshed, nil
}
