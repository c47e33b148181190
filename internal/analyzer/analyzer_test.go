package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galeriku/gallery-assistant/internal/catalog"
	"github.com/galeriku/gallery-assistant/internal/inference"
	"github.com/galeriku/gallery-assistant/internal/logger"
)

type fakeSentiment struct {
	result inference.Sentiment
	err    error
}

func (f *fakeSentiment) ClassifySentiment(ctx context.Context, text string) (inference.Sentiment, error) {
	return f.result, f.err
}

type fakeNER struct {
	result   []inference.Entity
	err      error
	lastText string
}

func (f *fakeNER) ExtractEntities(ctx context.Context, text string) ([]inference.Entity, error) {
	f.lastText = text
	return f.result, f.err
}

func newAnalyzer(t *testing.T, s *fakeSentiment, n *fakeNER) *Analyzer {
	if s == nil {
		s = &fakeSentiment{result: inference.Neutral()}
	}
	if n == nil {
		n = &fakeNER{result: []inference.Entity{}}
	}
	return New(s, n, logger.NewTestLogger(t))
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		text string
		want catalog.Language
	}{
		{"hai", catalog.LangID},
		{"foto populer dong", catalog.LangID},
		{"bagaimana cara melihat foto?", catalog.LangID},
		{"what is this gallery about", catalog.LangEN},
		{"show me trending pictures", catalog.LangEN},
		{"", catalog.LangEN},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectLanguage(tt.text), "text %q", tt.text)
	}
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		text string
		want catalog.Intent
	}{
		{"hai", catalog.IntentGreeting},
		{"tell me about this place", catalog.IntentAbout},
		{"foto populer dong", catalog.IntentPopularPhotos},
		{"apa kabar?", catalog.IntentCasual},
		{"xyzzy qwerty", catalog.IntentGeneral},
		{"", catalog.IntentGeneral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyIntent(tt.text), "text %q", tt.text)
	}
}

func TestClassifyIntentAlwaysInTaxonomy(t *testing.T) {
	known := map[catalog.Intent]bool{catalog.IntentGeneral: true}
	for _, intent := range catalog.Intents() {
		known[intent] = true
	}
	for _, text := range []string{"hai", "about foto populer", "💥", strings.Repeat("a", 10000)} {
		assert.True(t, known[ClassifyIntent(text)], "text %q", text)
	}
}

func TestClassifyIntentTieKeepsTaxonomyOrder(t *testing.T) {
	// "hi" occurs inside "this", so greeting scores 1 alongside about's
	// "about"; the earlier taxonomy entry must win.
	assert.Equal(t, catalog.IntentAbout, ClassifyIntent("what is this gallery about"))
}

func TestAnalyzeTextScenarioIndonesianGreeting(t *testing.T) {
	a := newAnalyzer(t, nil, nil)

	res := a.AnalyzeText(context.Background(), "hai", nil)
	assert.Equal(t, catalog.LangID, res.Language)
	assert.Equal(t, catalog.IntentGreeting, res.Intent)
	assert.InDelta(t, 0.8, res.Confidence, 1e-9)
	assert.False(t, res.RequiresClarification)
}

func TestAnalyzeTextScenarioEnglishAbout(t *testing.T) {
	a := newAnalyzer(t, nil, nil)

	res := a.AnalyzeText(context.Background(), "what is this gallery about", nil)
	assert.Equal(t, catalog.LangEN, res.Language)
	assert.Equal(t, catalog.IntentAbout, res.Intent)
}

func TestAnalyzeTextNeverFailsOnAdversarialInput(t *testing.T) {
	a := newAnalyzer(t,
		&fakeSentiment{err: errors.New("model exploded")},
		&fakeNER{err: errors.New("model exploded")},
	)

	for _, text := range []string{"", "🔥🔥🔥😊", strings.Repeat("x", 10000)} {
		res := a.AnalyzeText(context.Background(), text, nil)
		assert.NotEmpty(t, res.Language)
		assert.NotEmpty(t, res.Intent)
		assert.Equal(t, inference.Neutral(), res.Sentiment)
		assert.NotNil(t, res.Entities)
		assert.Empty(t, res.Entities)
	}
}

func TestAnalyzeTextSentimentFailureFallsBackToNeutral(t *testing.T) {
	a := newAnalyzer(t, &fakeSentiment{err: errors.New("boom")}, nil)

	res := a.AnalyzeText(context.Background(), "foto populer", nil)
	assert.Equal(t, inference.Neutral(), res.Sentiment)
	assert.Equal(t, catalog.IntentPopularPhotos, res.Intent)
}

func TestAnalyzeTextTruncatesNERInput(t *testing.T) {
	ner := &fakeNER{result: []inference.Entity{}}
	a := newAnalyzer(t, nil, ner)

	long := strings.TrimSpace(strings.Repeat("kata ", 500))
	a.AnalyzeText(context.Background(), long, nil)

	require.NotEmpty(t, ner.lastText)
	assert.Len(t, strings.Fields(ner.lastText), 128)
}

func TestAnalyzeTextGeneralIntentConfidence(t *testing.T) {
	a := newAnalyzer(t, nil, nil)

	res := a.AnalyzeText(context.Background(), "zzz unrelated zzz", nil)
	assert.Equal(t, catalog.IntentGeneral, res.Intent)
	assert.InDelta(t, 0.5, res.Confidence, 1e-9)
	assert.False(t, res.RequiresClarification)
}

func TestDefaultResult(t *testing.T) {
	res := DefaultResult()
	assert.Equal(t, catalog.LangID, res.Language)
	assert.Equal(t, catalog.IntentGeneral, res.Intent)
	assert.Equal(t, inference.Neutral(), res.Sentiment)
	assert.Empty(t, res.Entities)
	assert.False(t, res.RequiresClarification)
}
