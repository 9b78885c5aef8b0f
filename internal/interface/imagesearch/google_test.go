package imagesearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"hangar-service/internal/domain/entity"
	"hangar-service/pkg/logger"
	"hangar-service/pkg/metrics"
)

func newTestSearcher(t *testing.T, handler http.HandlerFunc) *GoogleSearcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := NewGoogleSearcher(context.Background(), "key", "engine", time.Second,
		metrics.NewNopMetrics(), logger.NewNopLogger(), option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return s
}

func TestSearchImages(t *testing.T) {
	var gotQuery, gotCx, gotType, gotKey string
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotCx = r.URL.Query().Get("cx")
		gotType = r.URL.Query().Get("searchType")
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": [
			{"link": "https://cdn.jetphotos.com/full/a6-eqa.jpg", "displayLink": "www.jetphotos.com", "title": "A6-EQA"},
			{"link": "", "displayLink": "broken.example"},
			{"link": "https://upload.wikimedia.org/a6-eqa.jpg", "displayLink": "commons.wikimedia.org"}
		]}`))
	})

	results, err := s.SearchImages(context.Background(), entity.ImageQuery{
		Registration: "A6-EQA",
		Type:         "Boeing 777-300ER",
		Airline:      "Emirates",
	})
	require.NoError(t, err)

	assert.Equal(t, "A6-EQA Boeing 777-300ER Emirates", gotQuery)
	assert.Equal(t, "engine", gotCx)
	assert.Equal(t, "image", gotType)
	assert.Equal(t, "key", gotKey)

	require.Len(t, results, 2)
	assert.Equal(t, entity.ImageResult{
		ID:              "https://cdn.jetphotos.com/full/a6-eqa.jpg",
		URL:             "https://cdn.jetphotos.com/full/a6-eqa.jpg",
		AttributionText: "www.jetphotos.com",
	}, results[0])
	assert.Equal(t, "commons.wikimedia.org", results[1].AttributionText)
}

func TestSearchImagesNoItems(t *testing.T) {
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	results, err := s.SearchImages(context.Background(), entity.ImageQuery{Registration: "N12345"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchImagesError(t *testing.T) {
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded"}}`))
	})

	_, err := s.SearchImages(context.Background(), entity.ImageQuery{Registration: "A6-EQA"})
	assert.Error(t, err)
}

func TestSearchImagesEmptyQuery(t *testing.T) {
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	results, err := s.SearchImages(context.Background(), entity.ImageQuery{Registration: "  "})
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestNewGoogleSearcherRequiresCredentials(t *testing.T) {
	_, err := NewGoogleSearcher(context.Background(), "", "engine", 0, nil, logger.NewNopLogger())
	assert.Error(t, err)
}
