package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/errs"
	"hangar-service/internal/domain/repository"
	"hangar-service/pkg/codes"
	"hangar-service/pkg/logger"
	"hangar-service/pkg/metrics"
	"hangar-service/pkg/utils"
)

const syntheticAirlinePrefix = "Airline "

var errIATATaken = errors.New("derived iata code held by another airline")

// AirlineResolver turns an IATA or ICAO airline code into a stored Airline, creating it when unknown.
type AirlineResolver struct {
	airlineRepo repository.AirlineRepository
	directory   repository.AirlineDirectory
	clock       utils.Clock
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// NewAirlineResolver creates a new airline resolver. directory may be nil.
func NewAirlineResolver(
	airlineRepo repository.AirlineRepository,
	directory repository.AirlineDirectory,
	clock utils.Clock,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *AirlineResolver {
	return &AirlineResolver{
		airlineRepo: airlineRepo,
		directory:   directory,
		clock:       clock,
		metrics:     metrics,
		logger:      logger,
	}
}

// Resolve returns the airline for code. Repeated calls with the same code return the same record.
func (r *AirlineResolver) Resolve(ctx context.Context, code string) (*entity.Airline, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, &errs.InsufficientDataError{Entity: "airline", Detail: "empty airline code"}
	}

	existing, err := r.airlineRepo.FindByIATA(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find airline by iata %s: %w", code, err)
	}
	if existing == nil {
		existing, err = r.airlineRepo.FindByICAO(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("find airline by icao %s: %w", code, err)
		}
	}
	if existing != nil {
		r.backfill(ctx, existing)
		r.metrics.EntityResolutions.WithLabelValues("airline", metrics.OutcomeFound).Inc()
		return existing, nil
	}

	candidate := r.candidateFor(ctx, code)
	airline, created, err := FindOrCreate(ctx, candidate, r.airlineRepo.Create, r.refetch(candidate))
	if errors.Is(err, errIATATaken) {
		// The IATA guessed from an ICAO code belongs to another airline; key the record by its ICAO instead.
		r.logger.Warn("Derived IATA code already in use, storing under ICAO", "code", code, "iata", candidate.IATACode)
		candidate.IATACode = candidate.ICAOCode
		airline, created, err = FindOrCreate(ctx, candidate, r.airlineRepo.Create, r.refetch(candidate))
	}
	if err != nil {
		r.metrics.ErrorsCount.WithLabelValues("resolve_airline").Inc()
		return nil, fmt.Errorf("create airline %s: %w", code, err)
	}

	switch {
	case !created:
		r.logger.Info("Airline created concurrently, using stored record", "code", code, "airlineID", airline.ID)
		r.metrics.EntityResolutions.WithLabelValues("airline", metrics.OutcomeRace).Inc()
		r.backfill(ctx, airline)
	case airline.CodeSource == entity.CodeSourceSynthetic:
		r.logger.Warn("Created synthetic airline", "code", code, "iata", airline.IATACode, "icao", airline.ICAOCode)
		r.metrics.EntityResolutions.WithLabelValues("airline", metrics.OutcomeSynthetic).Inc()
	default:
		r.logger.Info("Created airline", "code", code, "airlineID", airline.ID, "name", airline.Name)
		r.metrics.EntityResolutions.WithLabelValues("airline", metrics.OutcomeCreated).Inc()
	}
	return airline, nil
}

// refetch finds the record that won a conflicting insert of candidate, by ICAO first.
// An IATA holder whose ICAO differs from the candidate's is another airline and yields errIATATaken.
func (r *AirlineResolver) refetch(candidate *entity.Airline) func(context.Context) (*entity.Airline, error) {
	return func(ctx context.Context) (*entity.Airline, error) {
		if candidate.ICAOCode != "" {
			winner, err := r.airlineRepo.FindByICAO(ctx, candidate.ICAOCode)
			if err != nil || winner != nil {
				return winner, err
			}
		}

		winner, err := r.airlineRepo.FindByIATA(ctx, candidate.IATACode)
		if err != nil || winner == nil {
			return winner, err
		}
		if candidate.ICAOCode != "" && winner.ICAOCode != candidate.ICAOCode &&
			(winner.ICAOCode != "" || candidate.CodeSource == entity.CodeSourceSynthetic) {
			return nil, errIATATaken
		}
		return winner, nil
	}
}

// candidateFor builds the record to insert for an unknown code, preferring the static table.
func (r *AirlineResolver) candidateFor(ctx context.Context, code string) *entity.Airline {
	now := r.clock.Now()
	airline := &entity.Airline{CreatedAt: now, UpdatedAt: now}

	if info, ok := codes.AirlineByIATA(code); ok {
		airline.Name, airline.IATACode, airline.ICAOCode = info.Name, info.IATA, info.ICAO
		airline.CodeSource = entity.CodeSourceMapped
		return airline
	}
	if info, ok := codes.AirlineByICAO(code); ok {
		airline.Name, airline.IATACode, airline.ICAOCode = info.Name, info.IATA, info.ICAO
		airline.CodeSource = entity.CodeSourceMapped
		return airline
	}

	// Three letters could be either an IATA or an ICAO code; they are stored as IATA.
	airline.Name = syntheticAirlinePrefix + code
	airline.CodeSource = entity.CodeSourceSynthetic
	if len(code) >= 4 {
		airline.ICAOCode = code
		airline.IATACode = code[:2]
		return airline
	}
	airline.IATACode = code

	if name := r.directoryName(ctx, code); name != "" {
		airline.Name = name
		airline.CodeSource = entity.CodeSourceLookup
	}
	return airline
}

// directoryName asks the reference directory for a name. Failures count as unknown.
func (r *AirlineResolver) directoryName(ctx context.Context, code string) string {
	if r.directory == nil {
		return ""
	}
	name, err := r.directory.LookupAirlineName(ctx, code)
	if err != nil {
		r.logger.Warn("Airline directory lookup failed", "code", code, "error", err)
		r.metrics.ErrorsCount.WithLabelValues("airline_directory").Inc()
		return ""
	}
	return name
}

// backfill completes the ICAO code and replaces a placeholder name once the static table knows the airline.
// Failures are logged and leave the record as it was.
func (r *AirlineResolver) backfill(ctx context.Context, airline *entity.Airline) {
	var (
		info codes.AirlineInfo
		ok   bool
	)
	if airline.ICAOCode != "" {
		info, ok = codes.AirlineByICAO(airline.ICAOCode)
	} else {
		info, ok = codes.AirlineByIATA(airline.IATACode)
	}
	if !ok {
		return
	}

	if airline.ICAOCode == "" && info.ICAO != "" {
		if err := r.airlineRepo.FillMissing(ctx, airline.ID, map[string]interface{}{"icaoCode": info.ICAO}); err != nil {
			r.logger.Warn("Failed to back-fill airline ICAO", "airlineID", airline.ID, "error", err)
		} else {
			airline.ICAOCode = info.ICAO
			r.metrics.EntityResolutions.WithLabelValues("airline", metrics.OutcomeBackfill).Inc()
		}
	}

	if airline.CodeSource == entity.CodeSourceSynthetic && strings.HasPrefix(airline.Name, syntheticAirlinePrefix) {
		if err := r.airlineRepo.ReplaceSyntheticName(ctx, airline.ID, airline.Name, info.Name); err != nil {
			r.logger.Warn("Failed to replace synthetic airline name", "airlineID", airline.ID, "error", err)
		} else {
			airline.Name = info.Name
			airline.CodeSource = entity.CodeSourceMapped
			r.metrics.EntityResolutions.WithLabelValues("airline", metrics.OutcomeBackfill).Inc()
		}
	}
}
