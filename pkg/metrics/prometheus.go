package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution outcomes recorded on EntityResolutions.
const (
	OutcomeFound     = "found"
	OutcomeCreated   = "created"
	OutcomeRace      = "race_resolved"
	OutcomeSynthetic = "synthetic"
	OutcomeBackfill  = "backfilled"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	EntityResolutions   *prometheus.CounterVec
	FlightsCreated      prometheus.Counter
	DuplicateFlights    prometheus.Counter
	PhotoEnrichments    *prometheus.CounterVec
	ExternalRequestTime *prometheus.HistogramVec
	CircuitBreakerState *prometheus.GaugeVec
	FlightCreationTime  prometheus.Histogram
	ErrorsCount         *prometheus.CounterVec
}

// NewMetrics creates the service metrics and registers them with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EntityResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entity_resolutions_total",
			Help:      "Entity resolutions by entity type and outcome",
		}, []string{"entity", "outcome"}),
		FlightsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_created_total",
			Help:      "The total number of flights added to hangars",
		}),
		DuplicateFlights: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_flights_total",
			Help:      "The total number of rejected duplicate flights",
		}),
		PhotoEnrichments: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "photo_enrichments_total",
			Help:      "Aircraft photo enrichment attempts by result",
		}, []string{"result"}),
		ExternalRequestTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "external_request_duration_seconds",
			Help:      "Latency of calls to external providers",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "status"}),
		CircuitBreakerState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		}, []string{"name"}),
		FlightCreationTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "flight_creation_time_seconds",
			Help:      "Time taken to assemble and persist a flight",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}

// NewNopMetrics returns metrics registered on a private registry, for tests and tools.
func NewNopMetrics() *Metrics {
	return NewMetrics("test", prometheus.NewRegistry())
}
