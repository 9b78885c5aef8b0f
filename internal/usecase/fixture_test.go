package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/testutil"
	"hangar-service/pkg/cache"
	"hangar-service/pkg/logger"
	"hangar-service/pkg/metrics"
)

type fixture struct {
	clock        *testutil.StubClock
	airlineRepo  *testutil.AirlineRepo
	airportRepo  *testutil.AirportRepo
	aircraftRepo *testutil.AircraftRepo
	flightRepo   *testutil.FlightRepo
	flightData   *testutil.FlightDataProvider
	airportInfo  *testutil.AirportInfoProvider
	searcher     *testutil.ImageSearcher
	airlineDir   *testutil.AirlineDirectory
	cache        *cache.MemoryCache

	enricher *PhotoEnricher
	airlines *AirlineResolver
	airports *AirportResolver
	aircraft *AircraftResolver
	service  *HangarService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		clock:        testutil.FixedClock(),
		airlineRepo:  testutil.NewAirlineRepo(),
		airportRepo:  testutil.NewAirportRepo(),
		aircraftRepo: testutil.NewAircraftRepo(),
		flightRepo:   testutil.NewFlightRepo(),
		flightData:   &testutil.FlightDataProvider{},
		airportInfo:  &testutil.AirportInfoProvider{},
		searcher:     &testutil.ImageSearcher{},
		airlineDir:   &testutil.AirlineDirectory{},
	}
	f.cache = cache.NewMemoryCache(f.clock)

	log := logger.NewNopLogger()
	m := metrics.NewNopMetrics()

	cfg := DefaultPhotoEnricherConfig()
	cfg.Timeout = 2 * time.Second
	f.enricher = NewPhotoEnricher(f.aircraftRepo, f.searcher, f.cache, f.clock, cfg, m, log)
	f.airlines = NewAirlineResolver(f.airlineRepo, f.airlineDir, f.clock, m, log)
	f.airports = NewAirportResolver(f.airportRepo, f.airportInfo, f.clock, m, log)
	f.aircraft = NewAircraftResolver(f.aircraftRepo, f.enricher, f.clock, m, log)
	f.service = NewHangarService(
		f.flightRepo,
		f.airlineRepo,
		f.airportRepo,
		f.aircraftRepo,
		f.flightData,
		f.airlines,
		f.airports,
		f.aircraft,
		f.enricher,
		f.clock,
		m,
		log,
	)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = f.enricher.Wait(ctx)
	})
	return f
}

// drain waits for queued photo refreshes.
func (f *fixture) drain(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.enricher.Wait(ctx))
}

func timePtr(t time.Time) *time.Time { return &t }

func strPtr(s string) *string { return &s }

// ek221Payload is Emirates 221 Dubai to New York on 2024-05-01 as the flight data provider reports it.
func ek221Payload(departure time.Time) *entity.ExternalFlightPayload {
	return &entity.ExternalFlightPayload{
		Ident:              "EK221",
		Aircraft:           &entity.AircraftRef{Registration: "A6-EQA", Type: "B77W"},
		Origin:             &entity.AirportRef{Code: "OMDB", CodeICAO: "OMDB", Name: "Dubai Intl", City: "Dubai"},
		Destination:        &entity.AirportRef{Code: "KJFK", CodeICAO: "KJFK", Name: "John F Kennedy Intl", City: "New York"},
		ScheduledDeparture: timePtr(departure),
		ScheduledArrival:   timePtr(departure.Add(14 * time.Hour)),
		Raw:                []byte(`{"ident":"EK221","registration":"A6-EQA"}`),
	}
}
