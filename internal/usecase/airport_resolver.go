package usecase

import (
	"context"
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

// AirportResolver turns a provider airport reference into a stored Airport keyed by IATA code.
type AirportResolver struct {
	airportRepo repository.AirportRepository
	airportInfo repository.AirportInfoProvider
	clock       utils.Clock
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// NewAirportResolver creates a new airport resolver. airportInfo may be nil.
func NewAirportResolver(
	airportRepo repository.AirportRepository,
	airportInfo repository.AirportInfoProvider,
	clock utils.Clock,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *AirportResolver {
	return &AirportResolver{
		airportRepo: airportRepo,
		airportInfo: airportInfo,
		clock:       clock,
		metrics:     metrics,
		logger:      logger,
	}
}

// airportLookup carries the codes of one resolution and memoizes the airport info call.
type airportLookup struct {
	iata, icao string
	name, city string
	source     entity.CodeSource

	info        *entity.AirportInfo
	infoFetched bool
}

// Resolve returns the airport referenced by ref, creating it when unknown.
func (r *AirportResolver) Resolve(ctx context.Context, ref *entity.AirportRef) (*entity.Airport, error) {
	if !ref.HasCode() {
		return nil, &errs.InsufficientDataError{Entity: "airport", Detail: "no airport code"}
	}

	lookup := newAirportLookup(ref)
	if lookup.iata == "" && lookup.icao == "" {
		return nil, &errs.InsufficientDataError{Entity: "airport", Detail: fmt.Sprintf("unrecognized airport code %q", ref.Code)}
	}

	if lookup.iata != "" {
		existing, err := r.airportRepo.FindByIATA(ctx, lookup.iata)
		if err != nil {
			return nil, fmt.Errorf("find airport by iata %s: %w", lookup.iata, err)
		}
		if existing != nil {
			return r.found(ctx, existing, lookup, metrics.OutcomeFound), nil
		}
	} else {
		existing, err := r.airportRepo.FindByICAO(ctx, lookup.icao)
		if err != nil {
			return nil, fmt.Errorf("find airport by icao %s: %w", lookup.icao, err)
		}
		if existing != nil {
			return r.found(ctx, existing, lookup, metrics.OutcomeFound), nil
		}

		r.deriveIATA(ctx, lookup)

		existing, err = r.airportRepo.FindByIATA(ctx, lookup.iata)
		if err != nil {
			return nil, fmt.Errorf("find airport by derived iata %s: %w", lookup.iata, err)
		}
		if existing != nil {
			return r.found(ctx, existing, lookup, metrics.OutcomeFound), nil
		}
	}

	candidate := r.candidateFor(ctx, lookup)
	airport, created, err := FindOrCreate(ctx, candidate, r.airportRepo.Create, func(ctx context.Context) (*entity.Airport, error) {
		winner, err := r.airportRepo.FindByIATA(ctx, candidate.IATACode)
		if err != nil || winner != nil || candidate.ICAOCode == "" {
			return winner, err
		}
		return r.airportRepo.FindByICAO(ctx, candidate.ICAOCode)
	})
	if err != nil {
		r.metrics.ErrorsCount.WithLabelValues("resolve_airport").Inc()
		return nil, fmt.Errorf("create airport %s: %w", candidate.IATACode, err)
	}

	switch {
	case !created:
		return r.found(ctx, airport, lookup, metrics.OutcomeRace), nil
	case airport.CodeSource == entity.CodeSourceSynthetic:
		r.logger.Warn("Created airport with synthetic IATA code", "icao", airport.ICAOCode, "iata", airport.IATACode)
		r.metrics.EntityResolutions.WithLabelValues("airport", metrics.OutcomeSynthetic).Inc()
	default:
		r.logger.Info("Created airport", "iata", airport.IATACode, "airportID", airport.ID)
		r.metrics.EntityResolutions.WithLabelValues("airport", metrics.OutcomeCreated).Inc()
	}
	return airport, nil
}

// newAirportLookup applies code priority: explicit IATA, then explicit ICAO, then the generic code by length.
func newAirportLookup(ref *entity.AirportRef) *airportLookup {
	l := &airportLookup{
		iata:   strings.ToUpper(strings.TrimSpace(ref.CodeIATA)),
		icao:   strings.ToUpper(strings.TrimSpace(ref.CodeICAO)),
		name:   strings.TrimSpace(ref.Name),
		city:   strings.TrimSpace(ref.City),
		source: entity.CodeSourceProvided,
	}
	code := strings.ToUpper(strings.TrimSpace(ref.Code))
	switch {
	case l.iata == "" && len(code) == 3:
		l.iata = code
	case l.icao == "" && len(code) == 4:
		l.icao = code
	}
	return l
}

// deriveIATA fills lookup.iata for an ICAO-only reference: airport info, then the static table,
// then a synthetic "I"+icao[1:] code that cannot collide with real three-letter codes.
func (r *AirportResolver) deriveIATA(ctx context.Context, lookup *airportLookup) {
	if info := r.fetchInfo(ctx, lookup, lookup.icao); info != nil && info.CodeIATA != "" {
		lookup.iata = strings.ToUpper(info.CodeIATA)
		lookup.source = entity.CodeSourceLookup
		return
	}
	if iata, ok := codes.AirportIATAByICAO(lookup.icao); ok {
		lookup.iata = iata
		lookup.source = entity.CodeSourceMapped
		return
	}
	lookup.iata = "I" + lookup.icao[1:]
	lookup.source = entity.CodeSourceSynthetic
}

// fetchInfo calls the airport info provider at most once per lookup. Failures count as no data.
func (r *AirportResolver) fetchInfo(ctx context.Context, lookup *airportLookup, code string) *entity.AirportInfo {
	if lookup.infoFetched || r.airportInfo == nil {
		return lookup.info
	}
	lookup.infoFetched = true

	info, err := r.airportInfo.LookupAirport(ctx, code)
	if err != nil {
		r.logger.Warn("Airport info lookup failed", "code", code, "error", err)
		r.metrics.ErrorsCount.WithLabelValues("airport_info").Inc()
		return nil
	}
	lookup.info = info
	return info
}

func (r *AirportResolver) candidateFor(ctx context.Context, lookup *airportLookup) *entity.Airport {
	code := lookup.iata
	if lookup.icao != "" {
		code = lookup.icao
	}
	info := r.fetchInfo(ctx, lookup, code)

	now := r.clock.Now()
	airport := &entity.Airport{
		IATACode:   lookup.iata,
		ICAOCode:   lookup.icao,
		Name:       lookup.name,
		City:       lookup.city,
		Country:    entity.DefaultAirportCountry,
		Timezone:   entity.DefaultAirportTimezone,
		CodeSource: lookup.source,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if info == nil {
		if airport.ICAOCode == "" {
			if icao, ok := codes.AirportICAOByIATA(airport.IATACode); ok {
				airport.ICAOCode = icao
			}
		}
		return airport
	}

	if airport.ICAOCode == "" {
		airport.ICAOCode = strings.ToUpper(info.CodeICAO)
	}
	if airport.Name == "" {
		airport.Name = info.Name
	}
	if airport.City == "" {
		airport.City = info.City
	}
	if info.Country != "" {
		airport.Country = info.Country
	}
	if info.Timezone != "" {
		airport.Timezone = info.Timezone
	}
	airport.Coordinates = info.Coordinates
	return airport
}

// found back-fills empty ICAO, name and city on an existing airport. Present values are never replaced.
func (r *AirportResolver) found(ctx context.Context, airport *entity.Airport, lookup *airportLookup, outcome string) *entity.Airport {
	name, city := lookup.name, lookup.city
	if lookup.info != nil {
		if name == "" {
			name = lookup.info.Name
		}
		if city == "" {
			city = lookup.info.City
		}
	}

	fields := map[string]interface{}{}
	if airport.ICAOCode == "" && lookup.icao != "" {
		fields["icaoCode"] = lookup.icao
	}
	if airport.Name == "" && name != "" {
		fields["name"] = name
	}
	if airport.City == "" && city != "" {
		fields["city"] = city
	}

	if len(fields) == 0 {
		r.metrics.EntityResolutions.WithLabelValues("airport", outcome).Inc()
		return airport
	}

	if err := r.airportRepo.FillMissing(ctx, airport.ID, fields); err != nil {
		r.logger.Warn("Failed to back-fill airport", "airportID", airport.ID, "error", err)
		return airport
	}
	if v, ok := fields["icaoCode"]; ok {
		airport.ICAOCode = v.(string)
	}
	if v, ok := fields["name"]; ok {
		airport.Name = v.(string)
	}
	if v, ok := fields["city"]; ok {
		airport.City = v.(string)
	}
	r.metrics.EntityResolutions.WithLabelValues("airport", metrics.OutcomeBackfill).Inc()
	return airport
}
