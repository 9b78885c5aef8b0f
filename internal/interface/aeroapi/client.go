package aeroapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"hangar-service/pkg/breaker"
	"hangar-service/pkg/logger"
	"hangar-service/pkg/metrics"
)

const (
	DefaultBaseURL = "https://aeroapi.flightaware.com/aeroapi"
	defaultTimeout = 10 * time.Second
	serviceName    = "aeroapi"

	// maxErrorBody bounds how much of a failed response is kept for logs.
	maxErrorBody = 512
)

// errNotFound marks a 404 from AeroAPI. It does not trip the circuit breaker.
var errNotFound = errors.New("aeroapi: not found")

// StatusError is a non-2xx response from AeroAPI.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("aeroapi: HTTP %d: %s", e.StatusCode, e.Body)
}

// Client is a typed HTTP client for the FlightAware AeroAPI.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[[]byte]
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewClient creates an AeroAPI client. An empty baseURL selects the public endpoint and a
// non-positive timeout falls back to 10s.
func NewClient(baseURL, apiKey string, timeout time.Duration, m *metrics.Metrics, log logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		cb: breaker.New[[]byte](serviceName, breaker.Settings{
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, errNotFound)
			},
		}, m, log),
		metrics: m,
		logger:  log,
	}
}

// doRequest performs an authenticated GET request through the circuit breaker and decodes
// the JSON response into dest.
func (c *Client) doRequest(ctx context.Context, path string, params url.Values, dest any) error {
	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.get(ctx, path, params)
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("aeroapi: decoding response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("aeroapi: creating request: %w", err)
	}
	req.Header.Set("x-apikey", c.apiKey)
	req.Header.Set("Accept", "application/json; charset=UTF-8")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(start, "error")
		return nil, fmt.Errorf("aeroapi: request failed: %w", err)
	}
	defer resp.Body.Close()
	c.observe(start, strconv.Itoa(resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("AeroAPI request failed", "path", path, "status", resp.StatusCode)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("aeroapi: reading response: %w", err)
	}
	return body, nil
}

func (c *Client) observe(start time.Time, status string) {
	if c.metrics == nil {
		return
	}
	c.metrics.ExternalRequestTime.WithLabelValues(serviceName, status).Observe(time.Since(start).Seconds())
}
