package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/errs"
)

func TestAirportResolver_CreatesByIATA(t *testing.T) {
	f := newFixture(t)

	airport, err := f.airports.Resolve(context.Background(), &entity.AirportRef{Code: "lhr", Name: "Heathrow", City: "London"})
	require.NoError(t, err)
	assert.Equal(t, "LHR", airport.IATACode)
	assert.Equal(t, "EGLL", airport.ICAOCode)
	assert.Equal(t, "Heathrow", airport.Name)
	assert.Equal(t, "London", airport.City)
	assert.Equal(t, entity.DefaultAirportCountry, airport.Country)
	assert.Equal(t, entity.DefaultAirportTimezone, airport.Timezone)
	assert.Equal(t, entity.CodeSourceProvided, airport.CodeSource)
}

func TestAirportResolver_UsesAirportInfoOnCreate(t *testing.T) {
	f := newFixture(t)
	f.airportInfo.Airports = map[string]*entity.AirportInfo{
		"OMDB": {
			CodeIATA:    "DXB",
			CodeICAO:    "OMDB",
			Name:        "Dubai International",
			City:        "Dubai",
			Country:     "AE",
			Timezone:    "Asia/Dubai",
			Coordinates: &entity.Coordinates{Latitude: 25.25, Longitude: 55.36},
		},
	}

	airport, err := f.airports.Resolve(context.Background(), &entity.AirportRef{CodeICAO: "OMDB"})
	require.NoError(t, err)
	assert.Equal(t, "DXB", airport.IATACode)
	assert.Equal(t, "OMDB", airport.ICAOCode)
	assert.Equal(t, "Dubai International", airport.Name)
	assert.Equal(t, "AE", airport.Country)
	assert.Equal(t, "Asia/Dubai", airport.Timezone)
	assert.Equal(t, entity.CodeSourceLookup, airport.CodeSource)
	require.NotNil(t, airport.Coordinates)
	assert.Equal(t, 1, f.airportInfo.CallCount())
}

func TestAirportResolver_ICAOFallsBackToTable(t *testing.T) {
	f := newFixture(t)
	f.airportInfo.Err = errors.New("provider down")

	airport, err := f.airports.Resolve(context.Background(), &entity.AirportRef{Code: "KJFK"})
	require.NoError(t, err)
	assert.Equal(t, "JFK", airport.IATACode)
	assert.Equal(t, "KJFK", airport.ICAOCode)
	assert.Equal(t, entity.CodeSourceMapped, airport.CodeSource)
	assert.Equal(t, 1, f.airportInfo.CallCount())
}

func TestAirportResolver_SyntheticIATA(t *testing.T) {
	f := newFixture(t)

	airport, err := f.airports.Resolve(context.Background(), &entity.AirportRef{CodeICAO: "ZZZZ"})
	require.NoError(t, err)
	assert.Equal(t, "IZZZ", airport.IATACode)
	assert.Equal(t, "ZZZZ", airport.ICAOCode)
	assert.Equal(t, entity.CodeSourceSynthetic, airport.CodeSource)

	again, err := f.airports.Resolve(context.Background(), &entity.AirportRef{CodeICAO: "ZZZZ"})
	require.NoError(t, err)
	assert.Equal(t, airport.ID, again.ID)
	assert.Len(t, f.airportRepo.All(), 1)
}

func TestAirportResolver_IATAWinsOverICAO(t *testing.T) {
	f := newFixture(t)
	f.airportRepo.Seed(&entity.Airport{ID: "p1", IATACode: "DXB", Name: "Dubai"})

	airport, err := f.airports.Resolve(context.Background(), &entity.AirportRef{CodeIATA: "DXB", CodeICAO: "OMDB"})
	require.NoError(t, err)
	assert.Equal(t, "p1", airport.ID)
	assert.Equal(t, "OMDB", airport.ICAOCode)
	assert.Equal(t, 0, f.airportInfo.CallCount())
}

func TestAirportResolver_DerivedIATAFindsExisting(t *testing.T) {
	f := newFixture(t)
	f.airportRepo.Seed(&entity.Airport{ID: "p1", IATACode: "DXB", Country: "AE"})

	airport, err := f.airports.Resolve(context.Background(), &entity.AirportRef{CodeICAO: "OMDB", Name: "Dubai Intl", City: "Dubai"})
	require.NoError(t, err)
	assert.Equal(t, "p1", airport.ID)
	assert.Equal(t, "OMDB", airport.ICAOCode)
	assert.Equal(t, "Dubai Intl", airport.Name)
	assert.Equal(t, "Dubai", airport.City)
	assert.Len(t, f.airportRepo.All(), 1)
}

func TestAirportResolver_BackfillNeverOverwrites(t *testing.T) {
	f := newFixture(t)
	f.airportRepo.Seed(&entity.Airport{ID: "p1", IATACode: "JFK", ICAOCode: "KJFK", Name: "Kennedy", City: ""})

	airport, err := f.airports.Resolve(context.Background(), &entity.AirportRef{CodeIATA: "JFK", CodeICAO: "XXXX", Name: "Other Name", City: "New York"})
	require.NoError(t, err)
	assert.Equal(t, "KJFK", airport.ICAOCode)
	assert.Equal(t, "Kennedy", airport.Name)
	assert.Equal(t, "New York", airport.City)

	stored := f.airportRepo.All()
	require.Len(t, stored, 1)
	assert.Equal(t, "KJFK", stored[0].ICAOCode)
	assert.Equal(t, "Kennedy", stored[0].Name)
	assert.Equal(t, "New York", stored[0].City)
}

func TestAirportResolver_LostRace(t *testing.T) {
	f := newFixture(t)
	f.airportRepo.BeforeCreate = func(*entity.Airport) {
		f.airportRepo.BeforeCreate = nil
		f.airportRepo.Seed(&entity.Airport{ID: "winner", IATACode: "LHR"})
	}

	airport, err := f.airports.Resolve(context.Background(), &entity.AirportRef{CodeIATA: "LHR", Name: "Heathrow"})
	require.NoError(t, err)
	assert.Equal(t, "winner", airport.ID)
	assert.Equal(t, "Heathrow", airport.Name)
}

func TestAirportResolver_InsufficientData(t *testing.T) {
	f := newFixture(t)
	for _, ref := range []*entity.AirportRef{nil, {}, {Name: "Somewhere"}, {Code: "TOOLONG"}} {
		_, err := f.airports.Resolve(context.Background(), ref)
		var dataErr *errs.InsufficientDataError
		require.ErrorAs(t, err, &dataErr)
		assert.Equal(t, "airport", dataErr.Entity)
	}
}
