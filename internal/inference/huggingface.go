package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/galeriku/gallery-assistant/internal/logger"
)

var (
	ErrInferenceFailed  = errors.New("INFERENCE_FAILED")
	ErrInferenceTimeout = errors.New("INFERENCE_TIMEOUT")
)

// HuggingFaceConfig configures the hosted Inference API client.
type HuggingFaceConfig struct {
	BaseURL        string
	APIKey         string
	SentimentModel string
	NERModel       string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
}

// HuggingFaceClient implements Client against the HuggingFace hosted
// Inference API. A single instance is safe for concurrent use.
type HuggingFaceClient struct {
	config HuggingFaceConfig
	client *http.Client
	logger logger.Logger
}

func NewHuggingFaceClient(config HuggingFaceConfig, log logger.Logger) *HuggingFaceClient {
	return &HuggingFaceClient{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		logger: log.With(map[string]interface{}{
			"component": "huggingface",
		}),
	}
}

type hfScoredLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type hfEntity struct {
	EntityGroup string  `json:"entity_group"`
	Word        string  `json:"word"`
	Score       float64 `json:"score"`
}

// ClassifySentiment returns the highest-scoring star label for the text.
func (h *HuggingFaceClient) ClassifySentiment(ctx context.Context, text string) (Sentiment, error) {
	body, err := h.post(ctx, fmt.Sprintf("%s/models/%s", h.config.BaseURL, h.config.SentimentModel), text)
	if err != nil {
		return Neutral(), err
	}

	// The API wraps single-input results in an extra list.
	var nested [][]hfScoredLabel
	if err := json.Unmarshal(body, &nested); err != nil || len(nested) == 0 {
		var flat []hfScoredLabel
		if err := json.Unmarshal(body, &flat); err != nil {
			return Neutral(), fmt.Errorf("%w: decode sentiment: %v", ErrInferenceFailed, err)
		}
		nested = [][]hfScoredLabel{flat}
	}

	best := Neutral()
	for i, candidate := range nested[0] {
		if i == 0 || candidate.Score > best.Score {
			best = Sentiment{Label: candidate.Label, Score: candidate.Score}
		}
	}
	if len(nested[0]) == 0 {
		return Neutral(), fmt.Errorf("%w: empty sentiment result", ErrInferenceFailed)
	}
	return best, nil
}

// ExtractEntities returns aggregated entity spans for the text.
func (h *HuggingFaceClient) ExtractEntities(ctx context.Context, text string) ([]Entity, error) {
	body, err := h.post(ctx, fmt.Sprintf("%s/models/%s", h.config.BaseURL, h.config.NERModel), text)
	if err != nil {
		return nil, err
	}

	var raw []hfEntity
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode entities: %v", ErrInferenceFailed, err)
	}

	entities := make([]Entity, 0, len(raw))
	for _, e := range raw {
		entities = append(entities, Entity{
			Text:  e.Word,
			Type:  e.EntityGroup,
			Score: e.Score,
		})
	}
	return entities, nil
}

// Embed returns the sentence embedding for the text.
func (h *HuggingFaceClient) Embed(ctx context.Context, text string) ([]float64, error) {
	body, err := h.post(ctx, fmt.Sprintf("%s/pipeline/feature-extraction/%s", h.config.BaseURL, h.config.EmbeddingModel), text)
	if err != nil {
		return nil, err
	}

	// Sentence-level models return a flat vector; token-level output is
	// wrapped in one more list and gets mean-pooled.
	var flat []float64
	if err := json.Unmarshal(body, &flat); err == nil {
		return flat, nil
	}
	var nested [][]float64
	if err := json.Unmarshal(body, &nested); err != nil || len(nested) == 0 {
		return nil, fmt.Errorf("%w: decode embedding", ErrInferenceFailed)
	}
	pooled := make([]float64, len(nested[0]))
	for _, token := range nested {
		for i, v := range token {
			pooled[i] += v
		}
	}
	for i := range pooled {
		pooled[i] /= float64(len(nested))
	}
	return pooled, nil
}

func (h *HuggingFaceClient) post(ctx context.Context, url, text string) ([]byte, error) {
	payload, _ := json.Marshal(map[string]interface{}{
		"inputs": text,
		"options": map[string]bool{
			"wait_for_model": true,
		},
	})

	var lastErr error
	for attempt := 0; attempt <= h.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ErrInferenceTimeout
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInferenceFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")
		if h.config.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+h.config.APIKey)
		}

		resp, err := h.client.Do(req)
		if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, ErrInferenceTimeout
		}
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			h.logger.Warn("inference call failed", map[string]interface{}{
				"url":     url,
				"status":  resp.StatusCode,
				"attempt": attempt,
			})
			continue
		}
		return body, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrInferenceFailed, lastErr)
}
