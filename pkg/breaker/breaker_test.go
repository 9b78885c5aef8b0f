package breaker

import (
	"errors"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hangar-service/pkg/logger"
	"hangar-service/pkg/metrics"
)

var errBoom = errors.New("boom")

func TestBreakerOpensAfterFailureRatio(t *testing.T) {
	m := metrics.NewNopMetrics()
	cb := New[int]("test", Settings{MinRequests: 3, OpenTimeout: time.Hour}, m, logger.NewNopLogger())

	for i := 0; i < 3; i++ {
		_, err := cb.Execute(func() (int, error) { return 0, errBoom })
		require.ErrorIs(t, err, errBoom)
	}

	_, err := cb.Execute(func() (int, error) { return 1, nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, gobreaker.StateOpen, cb.State())

	var g dto.Metric
	require.NoError(t, m.CircuitBreakerState.WithLabelValues("test").Write(&g))
	assert.Equal(t, float64(2), g.GetGauge().GetValue())
}

func TestBreakerIgnoresSuccessfulErrors(t *testing.T) {
	errMissing := errors.New("missing")
	cb := New[int]("lenient", Settings{
		MinRequests:  2,
		IsSuccessful: func(err error) bool { return err == nil || errors.Is(err, errMissing) },
	}, nil, logger.NewNopLogger())

	for i := 0; i < 5; i++ {
		_, err := cb.Execute(func() (int, error) { return 0, errMissing })
		require.ErrorIs(t, err, errMissing)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}
