package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hangar-service/internal/domain/entity"
)

func TestPhotoEnricher_IsStale(t *testing.T) {
	f := newFixture(t)
	now := f.clock.Now()
	at := func(d time.Duration) *time.Time { ts := now.Add(-d); return &ts }
	withPhoto := []entity.Photo{{SourceID: "x"}}

	tests := []struct {
		name     string
		aircraft entity.Aircraft
		want     bool
	}{
		{name: "never refreshed", aircraft: entity.Aircraft{}, want: true},
		{name: "empty within retry cooldown", aircraft: entity.Aircraft{PhotoLastUpdated: at(30 * time.Minute)}, want: false},
		{name: "empty after retry cooldown", aircraft: entity.Aircraft{PhotoLastUpdated: at(2 * time.Hour)}, want: true},
		{name: "photos within cooldown", aircraft: entity.Aircraft{Photos: withPhoto, PhotoLastUpdated: at(6 * 24 * time.Hour)}, want: false},
		{name: "photos after cooldown", aircraft: entity.Aircraft{Photos: withPhoto, PhotoLastUpdated: at(8 * 24 * time.Hour)}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.enricher.IsStale(&tt.aircraft, now))
		})
	}
}

func seedAircraft(f *fixture) *entity.Aircraft {
	a := &entity.Aircraft{ID: "ac1", TailNumber: "A6-EQA", AircraftType: "B77W"}
	f.aircraftRepo.Seed(a)
	return a
}

func TestPhotoEnricher_FallsBackToTailOnlyQuery(t *testing.T) {
	f := newFixture(t)
	aircraft := seedAircraft(f)
	f.searcher.Results = map[entity.ImageQuery][]entity.ImageResult{
		{Registration: "A6-EQA"}: {{ID: "img-1", URL: "https://img.example/1.jpg"}},
	}

	added, err := f.enricher.Refresh(context.Background(), aircraft, &entity.Airline{Name: "Emirates"}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	queries := f.searcher.QueryLog()
	require.Len(t, queries, 2)
	assert.Equal(t, entity.ImageQuery{Registration: "A6-EQA", Type: "B77W", Airline: "Emirates"}, queries[0])
	assert.Equal(t, entity.ImageQuery{Registration: "A6-EQA"}, queries[1])
}

func TestPhotoEnricher_DeduplicatesBySourceID(t *testing.T) {
	f := newFixture(t)
	aircraft := seedAircraft(f)
	f.searcher.Default = []entity.ImageResult{
		{ID: "img-1", URL: "https://img.example/1.jpg"},
		{ID: "img-2", URL: "https://img.example/2.jpg"},
	}

	added, err := f.enricher.Refresh(context.Background(), aircraft, nil, false)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = f.enricher.Refresh(context.Background(), aircraft, nil, true)
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	stored := f.aircraftRepo.All()
	require.Len(t, stored, 1)
	assert.Len(t, stored[0].Photos, 2)
}

func TestPhotoEnricher_UsesCacheUnlessForced(t *testing.T) {
	f := newFixture(t)
	aircraft := seedAircraft(f)
	f.searcher.Default = []entity.ImageResult{{ID: "img-1", URL: "https://img.example/1.jpg"}}

	_, err := f.enricher.Refresh(context.Background(), aircraft, nil, false)
	require.NoError(t, err)
	_, err = f.enricher.Refresh(context.Background(), aircraft, nil, false)
	require.NoError(t, err)
	assert.Len(t, f.searcher.QueryLog(), 1)

	_, err = f.enricher.Refresh(context.Background(), aircraft, nil, true)
	require.NoError(t, err)
	assert.Len(t, f.searcher.QueryLog(), 2)

	f.clock.Advance(25 * time.Hour)
	_, err = f.enricher.Refresh(context.Background(), aircraft, nil, false)
	require.NoError(t, err)
	assert.Len(t, f.searcher.QueryLog(), 3)
}

func TestPhotoEnricher_EmptyResultsAreNotCached(t *testing.T) {
	f := newFixture(t)
	aircraft := &entity.Aircraft{ID: "ac1", TailNumber: "A6-EQA"}
	f.aircraftRepo.Seed(aircraft)

	_, err := f.enricher.Refresh(context.Background(), aircraft, nil, false)
	require.NoError(t, err)
	_, err = f.enricher.Refresh(context.Background(), aircraft, nil, false)
	require.NoError(t, err)

	assert.Len(t, f.searcher.QueryLog(), 2)
}

func TestPhotoEnricher_StampsOnSearchError(t *testing.T) {
	f := newFixture(t)
	aircraft := seedAircraft(f)
	f.searcher.Err = errors.New("search unavailable")

	_, err := f.enricher.Refresh(context.Background(), aircraft, nil, false)
	require.Error(t, err)

	stored := f.aircraftRepo.All()
	require.Len(t, stored, 1)
	require.NotNil(t, stored[0].PhotoLastUpdated)
	assert.Equal(t, f.clock.Now(), *stored[0].PhotoLastUpdated)
	assert.Len(t, f.searcher.QueryLog(), 1)
}

func TestPhotoEnricher_StampsWhenSearchTimesOut(t *testing.T) {
	f := newFixture(t)
	aircraft := seedAircraft(f)
	f.searcher.Block = make(chan struct{})
	defer close(f.searcher.Block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.enricher.Refresh(ctx, aircraft, nil, false)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	stored := f.aircraftRepo.All()
	require.NotNil(t, stored[0].PhotoLastUpdated)
}

func TestPhotoEnricher_WaitHonoursContext(t *testing.T) {
	f := newFixture(t)
	aircraft := seedAircraft(f)
	f.searcher.Block = make(chan struct{})

	f.enricher.Enqueue(aircraft, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, f.enricher.Wait(ctx), context.DeadlineExceeded)

	close(f.searcher.Block)
	f.drain(t)
}
