package inference

import "context"

// Sentiment is a normalized sentiment classification: an ordinal star
// label ("1 star".."5 stars") and the model's score for it.
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Neutral is the safe default sentiment.
func Neutral() Sentiment {
	return Sentiment{Label: "3 stars", Score: 0.5}
}

// Entity is a normalized named-entity span.
type Entity struct {
	Text  string  `json:"text"`
	Type  string  `json:"type"`
	Score float64 `json:"score"`
}

// SentimentClassifier scores the sentiment of arbitrary UTF-8 text.
type SentimentClassifier interface {
	ClassifySentiment(ctx context.Context, text string) (Sentiment, error)
}

// EntityExtractor finds named entities in arbitrary UTF-8 text.
type EntityExtractor interface {
	ExtractEntities(ctx context.Context, text string) ([]Entity, error)
}

// Embedder maps text to a fixed-length numeric vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Client bundles the three inference capabilities the assistant needs.
// Implementations are expected to be heavyweight to construct and are
// built once per process, then shared across concurrent calls.
type Client interface {
	SentimentClassifier
	EntityExtractor
	Embedder
}
