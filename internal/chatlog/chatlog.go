package chatlog

import (
	"context"
	"time"
)

// Record is one append-only interaction log entry.
type Record struct {
	SessionID  string
	Question   string
	Answer     string
	Language   string
	Sentiment  string
	Intent     string
	Confidence float64
	IsHelpful  bool
	CreatedAt  time.Time
}

// IsHelpful derives the helpfulness flag: confident and unambiguous.
func IsHelpful(confidence float64, requiresClarification bool) bool {
	return confidence > 0.7 && !requiresClarification
}

// Analytics is the interaction log rollup.
type Analytics struct {
	Total        int
	HelpfulRatio float64
	Intents      []IntentCount
	Languages    []LanguageCount
}

type IntentCount struct {
	Intent string
	Count  int
}

type LanguageCount struct {
	Language string
	Count    int
}

// Store is the append-only interaction log sink plus its read surface.
// Append failures must never affect the caller's response path.
type Store interface {
	Append(ctx context.Context, rec Record) error
	History(ctx context.Context, sessionID string, limit int) ([]Record, error)
	Stats(ctx context.Context) (Analytics, error)
}
