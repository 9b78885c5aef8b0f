package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/errs"
	"hangar-service/internal/domain/repository"
	"hangar-service/pkg/codes"
	"hangar-service/pkg/logger"
	"hangar-service/pkg/metrics"
	"hangar-service/pkg/utils"
)

const syntheticTailFormat = "UNKNOWN-%s-%d"

var (
	tailNumberRe  = regexp.MustCompile(`^[A-Z0-9-]+$`)
	tailSpaceRe   = regexp.MustCompile(`\s+`)
	tailInvalidRe = regexp.MustCompile(`[^A-Z0-9-]+`)
)

// AircraftResolver turns a provider aircraft reference into a stored Aircraft keyed by tail number.
type AircraftResolver struct {
	aircraftRepo repository.AircraftRepository
	enricher     *PhotoEnricher
	clock        utils.Clock
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewAircraftResolver creates a new aircraft resolver. enricher may be nil to disable photos.
func NewAircraftResolver(
	aircraftRepo repository.AircraftRepository,
	enricher *PhotoEnricher,
	clock utils.Clock,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *AircraftResolver {
	return &AircraftResolver{
		aircraftRepo: aircraftRepo,
		enricher:     enricher,
		clock:        clock,
		metrics:      metrics,
		logger:       logger,
	}
}

// Resolve returns the aircraft described by ref. airline may be nil.
// Photo enrichment is queued in the background and never affects the result.
func (r *AircraftResolver) Resolve(ctx context.Context, ref *entity.AircraftRef, airline *entity.Airline) (*entity.Aircraft, error) {
	if ref.IsEmpty() {
		return nil, &errs.InsufficientDataError{Entity: "aircraft", Detail: "no registration or type"}
	}

	tail := normalizeTail(ref.Registration)
	aircraftType := strings.ToUpper(strings.TrimSpace(ref.Type))

	if tail == "" {
		if aircraftType == "" {
			return nil, &errs.InsufficientDataError{Entity: "aircraft", Detail: fmt.Sprintf("invalid registration %q", ref.Registration)}
		}
		return r.createSynthetic(ctx, aircraftType, airline)
	}

	existing, err := r.aircraftRepo.FindByTail(ctx, tail)
	if err != nil {
		return nil, fmt.Errorf("find aircraft %s: %w", tail, err)
	}
	if existing != nil {
		r.backfill(ctx, existing, aircraftType, airline, metrics.OutcomeFound)
		r.maybeEnrich(existing, airline)
		return existing, nil
	}

	candidate := r.newAircraft(tail, aircraftType, airline, entity.TailSourceProvided)
	aircraft, created, err := FindOrCreate(ctx, candidate, r.aircraftRepo.Create, func(ctx context.Context) (*entity.Aircraft, error) {
		return r.aircraftRepo.FindByTail(ctx, tail)
	})
	if err != nil {
		r.metrics.ErrorsCount.WithLabelValues("resolve_aircraft").Inc()
		return nil, fmt.Errorf("create aircraft %s: %w", tail, err)
	}

	if created {
		r.logger.Info("Created aircraft", "tail", tail, "type", aircraftType, "aircraftID", aircraft.ID)
		r.metrics.EntityResolutions.WithLabelValues("aircraft", metrics.OutcomeCreated).Inc()
	} else {
		r.backfill(ctx, aircraft, aircraftType, airline, metrics.OutcomeRace)
	}
	r.maybeEnrich(aircraft, airline)
	return aircraft, nil
}

// createSynthetic stores an aircraft that has a type but no registration under a generated tail.
func (r *AircraftResolver) createSynthetic(ctx context.Context, aircraftType string, airline *entity.Airline) (*entity.Aircraft, error) {
	tail := fmt.Sprintf(syntheticTailFormat, tailInvalidRe.ReplaceAllString(aircraftType, ""), r.clock.Now().UnixMilli())
	candidate := r.newAircraft(tail, aircraftType, airline, entity.TailSourceSynthetic)

	aircraft, _, err := FindOrCreate(ctx, candidate, r.aircraftRepo.Create, func(ctx context.Context) (*entity.Aircraft, error) {
		return r.aircraftRepo.FindByTail(ctx, tail)
	})
	if err != nil {
		r.metrics.ErrorsCount.WithLabelValues("resolve_aircraft").Inc()
		return nil, fmt.Errorf("create synthetic aircraft %s: %w", tail, err)
	}
	r.logger.Warn("Created aircraft without registration", "tail", tail, "type", aircraftType)
	r.metrics.EntityResolutions.WithLabelValues("aircraft", metrics.OutcomeSynthetic).Inc()
	r.maybeEnrich(aircraft, airline)
	return aircraft, nil
}

func (r *AircraftResolver) newAircraft(tail, aircraftType string, airline *entity.Airline, source entity.TailSource) *entity.Aircraft {
	now := r.clock.Now()
	aircraft := &entity.Aircraft{
		TailNumber:   tail,
		AircraftType: aircraftType,
		Photos:       []entity.Photo{},
		TailSource:   source,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if airline != nil {
		aircraft.AirlineID = airline.ID
	}
	t, _ := codes.LookupAircraftType(aircraftType)
	aircraft.Manufacturer, aircraft.Model = t.Manufacturer, t.Model
	return aircraft
}

// backfill sets type, airline, manufacturer and model only where the stored aircraft lacks them.
func (r *AircraftResolver) backfill(ctx context.Context, aircraft *entity.Aircraft, aircraftType string, airline *entity.Airline, outcome string) {
	fields := map[string]interface{}{}
	if aircraft.AircraftType == "" && aircraftType != "" {
		fields["aircraftType"] = aircraftType
	}
	if aircraft.AirlineID == "" && airline != nil && airline.ID != "" {
		fields["airlineId"] = airline.ID
	}

	typeCode := aircraft.AircraftType
	if typeCode == "" {
		typeCode = aircraftType
	}
	if t, _ := codes.LookupAircraftType(typeCode); t.Model != "" {
		if aircraft.Manufacturer == "" && t.Manufacturer != "" {
			fields["manufacturer"] = t.Manufacturer
		}
		if aircraft.Model == "" {
			fields["model"] = t.Model
		}
	}

	if len(fields) == 0 {
		r.metrics.EntityResolutions.WithLabelValues("aircraft", outcome).Inc()
		return
	}
	if err := r.aircraftRepo.FillMissing(ctx, aircraft.ID, fields); err != nil {
		r.logger.Warn("Failed to back-fill aircraft", "tail", aircraft.TailNumber, "error", err)
		return
	}

	for field, value := range fields {
		v := value.(string)
		switch field {
		case "aircraftType":
			aircraft.AircraftType = v
		case "airlineId":
			aircraft.AirlineID = v
		case "manufacturer":
			aircraft.Manufacturer = v
		case "model":
			aircraft.Model = v
		}
	}
	r.metrics.EntityResolutions.WithLabelValues("aircraft", metrics.OutcomeBackfill).Inc()
}

func (r *AircraftResolver) maybeEnrich(aircraft *entity.Aircraft, airline *entity.Airline) {
	if r.enricher == nil {
		return
	}
	if r.enricher.IsStale(aircraft, r.clock.Now()) {
		r.enricher.Enqueue(aircraft, airline)
	}
}

// normalizeTail uppercases a registration and strips whitespace. Registrations outside [A-Z0-9-] yield "".
func normalizeTail(registration string) string {
	tail := strings.ToUpper(tailSpaceRe.ReplaceAllString(registration, ""))
	if !tailNumberRe.MatchString(tail) {
		return ""
	}
	return tail
}
