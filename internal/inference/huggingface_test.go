package inference

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galeriku/gallery-assistant/internal/logger"
)

func newTestClient(t *testing.T, serverURL string) *HuggingFaceClient {
	return NewHuggingFaceClient(HuggingFaceConfig{
		BaseURL:        serverURL,
		SentimentModel: "sentiment-model",
		NERModel:       "ner-model",
		EmbeddingModel: "embedding-model",
		Timeout:        2 * time.Second,
		MaxRetries:     1,
	}, logger.NewTestLogger(t))
}

func TestClassifySentimentPicksTopLabel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/sentiment-model", r.URL.Path)
		w.Write([]byte(`[[{"label":"3 stars","score":0.2},{"label":"5 stars","score":0.7},{"label":"1 star","score":0.1}]]`))
	}))
	defer server.Close()

	sentiment, err := newTestClient(t, server.URL).ClassifySentiment(context.Background(), "keren banget!")
	require.NoError(t, err)
	assert.Equal(t, "5 stars", sentiment.Label)
	assert.InDelta(t, 0.7, sentiment.Score, 1e-9)
}

func TestClassifySentimentErrorReturnsNeutral(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	sentiment, err := newTestClient(t, server.URL).ClassifySentiment(context.Background(), "hai")
	assert.Error(t, err)
	assert.Equal(t, Neutral(), sentiment)
}

func TestExtractEntities(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/ner-model", r.URL.Path)
		w.Write([]byte(`[{"entity_group":"PER","word":"Cerbi","score":0.98}]`))
	}))
	defer server.Close()

	entities, err := newTestClient(t, server.URL).ExtractEntities(context.Background(), "siapa Cerbi")
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, Entity{Text: "Cerbi", Type: "PER", Score: 0.98}, entities[0])
}

func TestEmbedFlatVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pipeline/feature-extraction/embedding-model", r.URL.Path)
		w.Write([]byte(`[0.1, 0.2, 0.3]`))
	}))
	defer server.Close()

	vec, err := newTestClient(t, server.URL).Embed(context.Background(), "foto populer")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vec)
}

func TestEmbedTokenOutputIsMeanPooled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[1, 2],[3, 4]]`))
	}))
	defer server.Close()

	vec, err := newTestClient(t, server.URL).Embed(context.Background(), "foto")
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, vec)
}

func TestPostRetriesOnServerError(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[[{"label":"4 stars","score":0.9}]]`))
	}))
	defer server.Close()

	sentiment, err := newTestClient(t, server.URL).ClassifySentiment(context.Background(), "bagus")
	require.NoError(t, err)
	assert.Equal(t, "4 stars", sentiment.Label)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestPostTimeoutReturnsTimeoutError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestClient(t, server.URL).ClassifySentiment(ctx, "hai")
	assert.ErrorIs(t, err, ErrInferenceTimeout)
}
