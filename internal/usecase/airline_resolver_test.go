package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/errs"
)

func TestAirlineResolver_CreatesFromTable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	airline, err := f.airlines.Resolve(ctx, "ek")
	require.NoError(t, err)
	assert.Equal(t, "Emirates", airline.Name)
	assert.Equal(t, "EK", airline.IATACode)
	assert.Equal(t, "UAE", airline.ICAOCode)
	assert.Equal(t, entity.CodeSourceMapped, airline.CodeSource)
	assert.NotEmpty(t, airline.ID)
}

func TestAirlineResolver_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.airlines.Resolve(ctx, "EK")
	require.NoError(t, err)
	second, err := f.airlines.Resolve(ctx, "EK")
	require.NoError(t, err)
	byICAO, err := f.airlines.Resolve(ctx, "UAE")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ID, byICAO.ID)
	assert.Len(t, f.airlineRepo.All(), 1)
}

func TestAirlineResolver_ICAOInputMapsToIATA(t *testing.T) {
	f := newFixture(t)

	airline, err := f.airlines.Resolve(context.Background(), "DLH")
	require.NoError(t, err)
	assert.Equal(t, "LH", airline.IATACode)
	assert.Equal(t, "DLH", airline.ICAOCode)
}

func TestAirlineResolver_Synthetic(t *testing.T) {
	tests := []struct {
		code     string
		wantIATA string
		wantICAO string
	}{
		{code: "ZZ", wantIATA: "ZZ"},
		{code: "ZZQ", wantIATA: "ZZQ"},
		{code: "ZZQX", wantIATA: "ZZ", wantICAO: "ZZQX"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			f := newFixture(t)
			airline, err := f.airlines.Resolve(context.Background(), tt.code)
			require.NoError(t, err)
			assert.Equal(t, "Airline "+tt.code, airline.Name)
			assert.Equal(t, tt.wantIATA, airline.IATACode)
			assert.Equal(t, tt.wantICAO, airline.ICAOCode)
			assert.Equal(t, entity.CodeSourceSynthetic, airline.CodeSource)
		})
	}
}

func TestAirlineResolver_EmptyCode(t *testing.T) {
	f := newFixture(t)
	_, err := f.airlines.Resolve(context.Background(), "  ")
	var dataErr *errs.InsufficientDataError
	assert.ErrorAs(t, err, &dataErr)
}

func TestAirlineResolver_ConcurrentResolveCreatesOneRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const workers = 32
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		ids   = make([]string, workers)
		errsC = make([]error, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			airline, err := f.airlines.Resolve(ctx, "EK")
			errsC[i] = err
			if airline != nil {
				ids[i] = airline.ID
			}
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errsC[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Len(t, f.airlineRepo.All(), 1)
}

func TestAirlineResolver_LostRaceReturnsWinner(t *testing.T) {
	f := newFixture(t)
	winner := &entity.Airline{Name: "Emirates", IATACode: "EK", ICAOCode: "UAE", CodeSource: entity.CodeSourceMapped}
	f.airlineRepo.BeforeCreate = func(*entity.Airline) {
		f.airlineRepo.BeforeCreate = nil
		f.airlineRepo.Seed(winner)
	}

	airline, err := f.airlines.Resolve(context.Background(), "EK")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, airline.ID)
	assert.Len(t, f.airlineRepo.All(), 1)
}

func TestAirlineResolver_LostRaceWithoutWinner(t *testing.T) {
	f := newFixture(t)
	f.airlineRepo.HideOnRefetch = true
	f.airlineRepo.BeforeCreate = func(*entity.Airline) {
		f.airlineRepo.BeforeCreate = nil
		f.airlineRepo.Seed(&entity.Airline{Name: "Emirates", IATACode: "EK"})
	}

	_, err := f.airlines.Resolve(context.Background(), "EK")
	assert.ErrorIs(t, err, errs.ErrEntityCreationRace)
}

func TestAirlineResolver_BackfillsMissingICAO(t *testing.T) {
	f := newFixture(t)
	f.airlineRepo.Seed(&entity.Airline{ID: "a1", Name: "Emirates", IATACode: "EK", CodeSource: entity.CodeSourceProvided})

	airline, err := f.airlines.Resolve(context.Background(), "EK")
	require.NoError(t, err)
	assert.Equal(t, "UAE", airline.ICAOCode)

	stored := f.airlineRepo.All()
	require.Len(t, stored, 1)
	assert.Equal(t, "UAE", stored[0].ICAOCode)
}

func TestAirlineResolver_ReplacesSyntheticName(t *testing.T) {
	f := newFixture(t)
	f.airlineRepo.Seed(&entity.Airline{ID: "a1", Name: "Airline QF", IATACode: "QF", CodeSource: entity.CodeSourceSynthetic})

	airline, err := f.airlines.Resolve(context.Background(), "QF")
	require.NoError(t, err)
	assert.Equal(t, "Qantas", airline.Name)
	assert.Equal(t, "QFA", airline.ICAOCode)
	assert.Equal(t, entity.CodeSourceMapped, airline.CodeSource)
}

func TestAirlineResolver_BackfillNeverOverwrites(t *testing.T) {
	f := newFixture(t)
	f.airlineRepo.Seed(&entity.Airline{ID: "a1", Name: "Fly Emirates", IATACode: "EK", ICAOCode: "UAE", CodeSource: entity.CodeSourceProvided})

	airline, err := f.airlines.Resolve(context.Background(), "EK")
	require.NoError(t, err)
	assert.Equal(t, "Fly Emirates", airline.Name)

	stored := f.airlineRepo.All()
	require.Len(t, stored, 1)
	assert.Equal(t, "Fly Emirates", stored[0].Name)
	assert.Equal(t, "UAE", stored[0].ICAOCode)
}

func TestAirlineResolver_DirectoryNamesUnknownCode(t *testing.T) {
	f := newFixture(t)
	f.airlineDir.Names = map[string]string{"ZZ": "Zed Air"}

	airline, err := f.airlines.Resolve(context.Background(), "ZZ")
	require.NoError(t, err)
	assert.Equal(t, "Zed Air", airline.Name)
	assert.Equal(t, entity.CodeSourceLookup, airline.CodeSource)
}

func TestAirlineResolver_DirectoryFailureFallsBackToSynthetic(t *testing.T) {
	f := newFixture(t)
	f.airlineDir.Err = errors.New("postgres unavailable")

	airline, err := f.airlines.Resolve(context.Background(), "ZZ")
	require.NoError(t, err)
	assert.Equal(t, "Airline ZZ", airline.Name)
	assert.Equal(t, entity.CodeSourceSynthetic, airline.CodeSource)
}

func TestAirlineResolver_DerivedIATACollisionKeepsNewICAO(t *testing.T) {
	f := newFixture(t)
	f.airlineRepo.Seed(&entity.Airline{ID: "zx", Name: "Zephyr Express", IATACode: "ZX", ICAOCode: "ZXA", CodeSource: entity.CodeSourceLookup})

	airline, err := f.airlines.Resolve(context.Background(), "ZXQW")
	require.NoError(t, err)
	assert.NotEqual(t, "zx", airline.ID)
	assert.Equal(t, "ZXQW", airline.ICAOCode)
	assert.Equal(t, "ZXQW", airline.IATACode)
	assert.Equal(t, entity.CodeSourceSynthetic, airline.CodeSource)
	assert.Len(t, f.airlineRepo.All(), 2)

	again, err := f.airlines.Resolve(context.Background(), "ZXQW")
	require.NoError(t, err)
	assert.Equal(t, airline.ID, again.ID)

	existing, err := f.airlines.Resolve(context.Background(), "ZX")
	require.NoError(t, err)
	assert.Equal(t, "zx", existing.ID)
	assert.Equal(t, "ZXA", existing.ICAOCode)
}

func TestAirlineResolver_DerivedIATAWinnerWithSameICAO(t *testing.T) {
	f := newFixture(t)
	winner := &entity.Airline{Name: "Airline ZXQW", IATACode: "ZX", ICAOCode: "ZXQW", CodeSource: entity.CodeSourceSynthetic}
	f.airlineRepo.BeforeCreate = func(*entity.Airline) {
		f.airlineRepo.BeforeCreate = nil
		f.airlineRepo.Seed(winner)
	}

	airline, err := f.airlines.Resolve(context.Background(), "ZXQW")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, airline.ID)
	assert.Len(t, f.airlineRepo.All(), 1)
}
