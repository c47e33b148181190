package analyzer

import (
	"context"
	"strings"

	"github.com/galeriku/gallery-assistant/internal/catalog"
	"github.com/galeriku/gallery-assistant/internal/inference"
	"github.com/galeriku/gallery-assistant/internal/logger"
	"github.com/galeriku/gallery-assistant/internal/metrics"
)

const (
	// matchConfidence is assigned whenever keyword scoring picked an
	// intent. Deriving confidence from match strength is an open design
	// point; until then the clarification threshold below is unreachable
	// by construction.
	matchConfidence    = 0.8
	fallbackConfidence = 0.5

	clarificationThreshold = 0.4

	// maxNERTokens bounds the input handed to the NER capability.
	maxNERTokens = 128
)

// indonesianMarkers drive the language heuristic: any occurrence of a
// marker classifies the text as Indonesian.
var indonesianMarkers = []string{
	"apa", "bagaimana", "cara", "lihat", "foto", "gambar", "bisa", "tolong",
	"hai", "halo", "hei", "selamat", "kabar", "dong", "terima kasih",
}

// Result is the structured analysis of one query.
type Result struct {
	Language              catalog.Language    `json:"language"`
	Sentiment             inference.Sentiment `json:"sentiment"`
	Entities              []inference.Entity  `json:"entities"`
	Intent                catalog.Intent      `json:"intent"`
	Confidence            float64             `json:"confidence"`
	RequiresClarification bool                `json:"requires_clarification"`
}

// Analyzer turns raw query text into a Result. The inference
// capabilities are injected and shared; the analyzer itself holds no
// mutable state and is safe for concurrent use.
type Analyzer struct {
	sentiment inference.SentimentClassifier
	ner       inference.EntityExtractor
	logger    logger.Logger
}

func New(sentiment inference.SentimentClassifier, ner inference.EntityExtractor, log logger.Logger) *Analyzer {
	return &Analyzer{
		sentiment: sentiment,
		ner:       ner,
		logger: log.With(map[string]interface{}{
			"component": "analyzer",
		}),
	}
}

// AnalyzeText analyzes a query. The history parameter carries the
// formatted rolling conversation context; classification is currently
// keyword-based and does not consult it. AnalyzeText never fails: any
// unexpected condition yields the safe default Result.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string, history []string) (res Result) {
	_ = history

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("analysis panicked, returning defaults", map[string]interface{}{
				"panic": r,
			})
			res = DefaultResult()
		}
	}()

	res = Result{
		Language:  DetectLanguage(text),
		Sentiment: a.classifySentiment(ctx, text),
		Entities:  a.extractEntities(ctx, text),
	}

	res.Intent = ClassifyIntent(text)
	if res.Intent == catalog.IntentGeneral {
		res.Confidence = fallbackConfidence
	} else {
		res.Confidence = matchConfidence
	}
	res.RequiresClarification = res.Confidence < clarificationThreshold

	return res
}

// DefaultResult is the recovery value when analysis cannot complete.
func DefaultResult() Result {
	return Result{
		Language:              catalog.LangID,
		Sentiment:             inference.Neutral(),
		Entities:              []inference.Entity{},
		Intent:                catalog.IntentGeneral,
		Confidence:            fallbackConfidence,
		RequiresClarification: false,
	}
}

// DetectLanguage applies the marker-word heuristic: Indonesian when any
// marker occurs in the lowercased text, English otherwise.
func DetectLanguage(text string) catalog.Language {
	lower := strings.ToLower(text)
	for _, marker := range indonesianMarkers {
		if strings.Contains(lower, marker) {
			return catalog.LangID
		}
	}
	return catalog.LangEN
}

// ClassifyIntent scores every intent by counting its patterns occurring
// as substrings of the lowercased text. The strictly highest count
// wins; ties keep the earliest intent in taxonomy order. No match at
// all yields the general intent.
func ClassifyIntent(text string) catalog.Intent {
	lower := strings.ToLower(text)

	best := catalog.IntentGeneral
	highest := 0
	for _, intent := range catalog.Intents() {
		score := 0
		for _, pattern := range catalog.Patterns(intent) {
			if strings.Contains(lower, pattern) {
				score++
			}
		}
		if score > highest {
			highest = score
			best = intent
		}
	}
	return best
}

func (a *Analyzer) classifySentiment(ctx context.Context, text string) inference.Sentiment {
	sentiment, err := a.sentiment.ClassifySentiment(ctx, text)
	if err != nil {
		metrics.InferenceFailures.WithLabelValues("sentiment").Inc()
		a.logger.Warn("sentiment classification failed, using neutral", map[string]interface{}{
			"error": err.Error(),
		})
		return inference.Neutral()
	}
	return sentiment
}

func (a *Analyzer) extractEntities(ctx context.Context, text string) []inference.Entity {
	entities, err := a.ner.ExtractEntities(ctx, truncateTokens(text, maxNERTokens))
	if err != nil {
		metrics.InferenceFailures.WithLabelValues("ner").Inc()
		a.logger.Warn("entity extraction failed, using empty list", map[string]interface{}{
			"error": err.Error(),
		})
		return []inference.Entity{}
	}
	if entities == nil {
		entities = []inference.Entity{}
	}
	return entities
}

func truncateTokens(text string, max int) string {
	tokens := strings.Fields(text)
	if len(tokens) <= max {
		return text
	}
	return strings.Join(tokens[:max], " ")
}
