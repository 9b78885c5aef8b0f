// Package imagesearch finds aircraft photos with Google Custom Search.
package imagesearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/repository"
	"hangar-service/pkg/breaker"
	"hangar-service/pkg/logger"
	"hangar-service/pkg/metrics"
)

const (
	serviceName    = "image_search"
	defaultTimeout = 10 * time.Second
	maxResults     = 10
)

// GoogleSearcher implements repository.ImageSearcher over the Custom Search JSON API.
type GoogleSearcher struct {
	service  *customsearch.Service
	engineID string
	timeout  time.Duration
	cb       *gobreaker.CircuitBreaker[[]entity.ImageResult]
	metrics  *metrics.Metrics
	logger   logger.Logger
}

var _ repository.ImageSearcher = (*GoogleSearcher)(nil)

// NewGoogleSearcher creates a searcher for the given programmable search engine.
// Extra client options are appended after the API key, e.g. option.WithEndpoint in tests.
func NewGoogleSearcher(ctx context.Context, apiKey, engineID string, timeout time.Duration, m *metrics.Metrics, log logger.Logger, opts ...option.ClientOption) (*GoogleSearcher, error) {
	if apiKey == "" || engineID == "" {
		return nil, fmt.Errorf("image search requires an API key and a search engine id")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	service, err := customsearch.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("unable to create custom search service: %w", err)
	}

	return &GoogleSearcher{
		service:  service,
		engineID: engineID,
		timeout:  timeout,
		cb:       breaker.New[[]entity.ImageResult](serviceName, breaker.Settings{}, m, log),
		metrics:  m,
		logger:   log,
	}, nil
}

// SearchImages implements repository.ImageSearcher.
func (s *GoogleSearcher) SearchImages(ctx context.Context, query entity.ImageQuery) ([]entity.ImageResult, error) {
	q := buildQuery(query)
	if q == "" {
		return nil, nil
	}

	return s.cb.Execute(func() ([]entity.ImageResult, error) {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		start := time.Now()
		search, err := s.service.Cse.List().
			Cx(s.engineID).
			Q(q).
			SearchType("image").
			Safe("active").
			Num(maxResults).
			Context(ctx).
			Do()
		if err != nil {
			s.observe(start, "error")
			return nil, fmt.Errorf("image search %q: %w", q, err)
		}
		s.observe(start, "ok")

		results := make([]entity.ImageResult, 0, len(search.Items))
		for _, item := range search.Items {
			if item == nil || item.Link == "" {
				continue
			}
			results = append(results, entity.ImageResult{
				ID:              item.Link,
				URL:             item.Link,
				AttributionText: item.DisplayLink,
			})
		}
		s.logger.Debug("Image search finished", "query", q, "results", len(results))
		return results, nil
	})
}

func (s *GoogleSearcher) observe(start time.Time, status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ExternalRequestTime.WithLabelValues(serviceName, status).Observe(time.Since(start).Seconds())
}

// buildQuery joins the non-empty query parts, registration first.
func buildQuery(q entity.ImageQuery) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{q.Registration, q.Type, q.Airline} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
