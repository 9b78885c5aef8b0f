package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/repository"
	"hangar-service/pkg/cache"
	"hangar-service/pkg/logger"
	"hangar-service/pkg/metrics"
	"hangar-service/pkg/utils"
)

// Photo enrichment results recorded on PhotoEnrichments.
const (
	photoResultFound = "found"
	photoResultEmpty = "empty"
	photoResultError = "error"
)

// PhotoEnricherConfig holds the enrichment timing knobs.
type PhotoEnricherConfig struct {
	Timeout         time.Duration // budget for one background refresh
	CacheTTL        time.Duration // lifetime of cached search results
	RefreshInterval time.Duration // cooldown after a refresh
	RetryInterval   time.Duration // shorter cooldown when the last refresh found nothing
}

// DefaultPhotoEnricherConfig returns the production cooldowns.
func DefaultPhotoEnricherConfig() PhotoEnricherConfig {
	return PhotoEnricherConfig{
		Timeout:         10 * time.Second,
		CacheTTL:        24 * time.Hour,
		RefreshInterval: 7 * 24 * time.Hour,
		RetryInterval:   time.Hour,
	}
}

// PhotoEnricher attaches photos to aircraft on a best-effort basis. It never fails a resolution.
type PhotoEnricher struct {
	aircraftRepo repository.AircraftRepository
	searcher     repository.ImageSearcher
	cache        cache.Cache
	clock        utils.Clock
	cfg          PhotoEnricherConfig
	metrics      *metrics.Metrics
	logger       logger.Logger

	group singleflight.Group
	wg    sync.WaitGroup
}

// NewPhotoEnricher creates a new photo enricher
func NewPhotoEnricher(
	aircraftRepo repository.AircraftRepository,
	searcher repository.ImageSearcher,
	cache cache.Cache,
	clock utils.Clock,
	cfg PhotoEnricherConfig,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *PhotoEnricher {
	return &PhotoEnricher{
		aircraftRepo: aircraftRepo,
		searcher:     searcher,
		cache:        cache,
		clock:        clock,
		cfg:          cfg,
		metrics:      metrics,
		logger:       logger,
	}
}

// IsStale reports whether aircraft is due for a photo refresh at now.
func (e *PhotoEnricher) IsStale(aircraft *entity.Aircraft, now time.Time) bool {
	if aircraft.PhotoLastUpdated == nil {
		return true
	}
	since := now.Sub(*aircraft.PhotoLastUpdated)
	if len(aircraft.Photos) == 0 && since > e.cfg.RetryInterval {
		return true
	}
	return since > e.cfg.RefreshInterval
}

// Enqueue refreshes photos in the background, detached from the caller's context.
func (e *PhotoEnricher) Enqueue(aircraft *entity.Aircraft, airline *entity.Airline) {
	snapshot := *aircraft
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), e.cfg.Timeout)
		defer cancel()

		if _, err := e.Refresh(ctx, &snapshot, airline, false); err != nil {
			e.logger.Warn("Background photo refresh failed", "tail", snapshot.TailNumber, "error", err)
		}
	}()
}

// Wait blocks until queued refreshes finish or ctx is done.
func (e *PhotoEnricher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh searches photos for aircraft and attaches the new ones, returning how many were added.
// PhotoLastUpdated is stamped even when the search fails. force bypasses cached results.
// Concurrent refreshes of one tail share a single search.
func (e *PhotoEnricher) Refresh(ctx context.Context, aircraft *entity.Aircraft, airline *entity.Airline, force bool) (int, error) {
	v, err, _ := e.group.Do(aircraft.TailNumber, func() (interface{}, error) {
		return e.refresh(ctx, aircraft, airline, force)
	})
	added, _ := v.(int)
	return added, err
}

func (e *PhotoEnricher) refresh(ctx context.Context, aircraft *entity.Aircraft, airline *entity.Airline, force bool) (int, error) {
	var (
		results   []entity.ImageResult
		searchErr error
	)
	for _, q := range photoQueries(aircraft, airline) {
		results, searchErr = e.search(ctx, q, force)
		if searchErr != nil || len(results) > 0 {
			break
		}
	}

	now := e.clock.Now()
	photos := make([]entity.Photo, 0, len(results))
	for _, res := range results {
		if res.ID == "" || res.URL == "" {
			continue
		}
		photos = append(photos, entity.Photo{
			URL:          res.URL,
			Photographer: res.AttributionText,
			SourceID:     res.ID,
			License:      res.License,
			AddedAt:      now,
		})
	}

	// The stamp must land even when ctx expired during the search.
	stampCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	added, err := e.aircraftRepo.AddPhotos(stampCtx, aircraft.ID, photos, now)
	if err != nil {
		e.metrics.PhotoEnrichments.WithLabelValues(photoResultError).Inc()
		return 0, fmt.Errorf("attach photos to %s: %w", aircraft.TailNumber, err)
	}

	switch {
	case searchErr != nil:
		e.metrics.PhotoEnrichments.WithLabelValues(photoResultError).Inc()
		return added, fmt.Errorf("search photos for %s: %w", aircraft.TailNumber, searchErr)
	case len(photos) == 0:
		e.metrics.PhotoEnrichments.WithLabelValues(photoResultEmpty).Inc()
	default:
		e.metrics.PhotoEnrichments.WithLabelValues(photoResultFound).Inc()
	}
	e.logger.Debug("Aircraft photos refreshed", "tail", aircraft.TailNumber, "found", len(photos), "added", added)
	return added, nil
}

// photoQueries lists the searches for aircraft, most specific first. A generated tail
// names no real airframe, so those aircraft are searched by type and airline only.
func photoQueries(aircraft *entity.Aircraft, airline *entity.Airline) []entity.ImageQuery {
	var airlineName string
	if airline != nil {
		airlineName = airline.Name
	}
	if aircraft.TailSource == entity.TailSourceSynthetic {
		return []entity.ImageQuery{{Type: aircraft.AircraftType, Airline: airlineName}}
	}

	full := entity.ImageQuery{Registration: aircraft.TailNumber, Type: aircraft.AircraftType, Airline: airlineName}
	queries := []entity.ImageQuery{full}
	if tailOnly := (entity.ImageQuery{Registration: aircraft.TailNumber}); tailOnly != full {
		queries = append(queries, tailOnly)
	}
	return queries
}

// search runs one image query through the cache. Empty results are not cached so the retry cooldown can find new photos.
func (e *PhotoEnricher) search(ctx context.Context, q entity.ImageQuery, force bool) ([]entity.ImageResult, error) {
	key := photoCacheKey(q)

	if force {
		if err := e.cache.Delete(ctx, key); err != nil {
			e.logger.Warn("Failed to invalidate photo cache", "key", key, "error", err)
		}
	} else if raw, found, err := e.cache.Get(ctx, key); err != nil {
		e.logger.Warn("Photo cache read failed", "key", key, "error", err)
	} else if found {
		var cached []entity.ImageResult
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	results, err := e.searcher.SearchImages(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	raw, err := json.Marshal(results)
	if err == nil {
		err = e.cache.Set(ctx, key, raw, e.cfg.CacheTTL)
	}
	if err != nil {
		e.logger.Warn("Photo cache write failed", "key", key, "error", err)
	}
	return results, nil
}

func photoCacheKey(q entity.ImageQuery) string {
	return "photos:" + strings.ToLower(strings.Join([]string{q.Registration, q.Type, q.Airline}, "|"))
}
