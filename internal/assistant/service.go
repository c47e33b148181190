package assistant

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/galeriku/gallery-assistant/internal/analyzer"
	"github.com/galeriku/gallery-assistant/internal/catalog"
	"github.com/galeriku/gallery-assistant/internal/chatlog"
	"github.com/galeriku/gallery-assistant/internal/dynamic"
	"github.com/galeriku/gallery-assistant/internal/inference"
	"github.com/galeriku/gallery-assistant/internal/logger"
	"github.com/galeriku/gallery-assistant/internal/metrics"
	"github.com/galeriku/gallery-assistant/internal/models"
	"github.com/galeriku/gallery-assistant/internal/session"
)

const (
	defaultHistoryLimit = 10
	maxSuggestions      = 3
)

// forbiddenTopics reject a query before any analysis happens.
var forbiddenTopics = []string{
	"password", "admin", "login", "database", "server",
	"backend", "code", "sistem", "system", "private",
}

// Service orchestrates query processing: analysis, intent dispatch,
// response assembly and the best-effort context/log side effects. It is
// constructed once at startup with its long-lived dependencies and is
// safe for concurrent use.
type Service struct {
	analyzer *analyzer.Analyzer
	catalog  *catalog.Catalog
	resolver *dynamic.Resolver
	sessions *session.Manager
	logs     chatlog.Store
	embedder inference.Embedder
	logger   logger.Logger

	handlers map[catalog.Intent]handlerFunc
}

// handlerFunc builds the response for one intent. Returning nil falls
// through to the default (not-understood) handling.
type handlerFunc func(ctx context.Context, q *query) *models.AskResponse

type query struct {
	sessionID string
	text      string
	analysis  analyzer.Result
}

func NewService(
	an *analyzer.Analyzer,
	cat *catalog.Catalog,
	resolver *dynamic.Resolver,
	sessions *session.Manager,
	logs chatlog.Store,
	embedder inference.Embedder,
	log logger.Logger,
) *Service {
	s := &Service{
		analyzer: an,
		catalog:  cat,
		resolver: resolver,
		sessions: sessions,
		logs:     logs,
		embedder: embedder,
		logger: log.With(map[string]interface{}{
			"component": "assistant",
		}),
	}
	s.handlers = map[catalog.Intent]handlerFunc{
		catalog.IntentPopularPhotos: s.handlePopularPhotos,
		catalog.IntentGreeting:      s.handleGreeting,
		catalog.IntentAbout:         s.handleAbout,
		catalog.IntentCasual:        s.handleCasual,
	}
	return s
}

// ProcessQuery runs the full pipeline for one question. It never
// returns an error: every failure mode resolves to a response payload,
// and a panic anywhere in the pipeline degrades to the generic
// localized error.
func (s *Service) ProcessQuery(ctx context.Context, req models.AskRequest) (resp *models.AskResponse) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("query processing panicked", map[string]interface{}{
				"session_id": sessionID,
				"panic":      r,
			})
			resp = &models.AskResponse{
				SessionID: sessionID,
				Text:      s.catalog.ErrorResponse(catalog.LangID),
			}
		}
	}()

	text := strings.TrimSpace(req.Question)
	if text == "" {
		metrics.QueriesRejected.WithLabelValues("empty").Inc()
		return errorResponse(sessionID, models.ErrorEmptyQuestion, "Question is required")
	}

	// Safety rejection is silent: generic error text, no analysis, no
	// log entry.
	if !IsSafeQuery(text) {
		metrics.QueriesRejected.WithLabelValues("unsafe").Inc()
		return &models.AskResponse{
			SessionID: sessionID,
			Text:      s.catalog.ErrorResponse(catalog.LangID),
		}
	}

	started := time.Now()

	history, err := s.sessions.FormattedHistory(ctx, sessionID)
	if err != nil {
		s.logger.Warn("failed to load conversation history", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	q := &query{
		sessionID: sessionID,
		text:      text,
		analysis:  s.analyzer.AnalyzeText(ctx, text, history),
	}

	if handler, ok := s.handlers[q.analysis.Intent]; ok {
		resp = handler(ctx, q)
	}
	if resp == nil {
		resp = s.handleDefault(ctx, q)
	}
	resp.SessionID = sessionID

	metrics.QueriesTotal.WithLabelValues(string(q.analysis.Intent), string(q.analysis.Language)).Inc()
	metrics.QueryDuration.WithLabelValues(string(q.analysis.Intent)).Observe(time.Since(started).Seconds())

	s.recordInteraction(ctx, q, resp)

	return resp
}

// IsSafeQuery reports whether the text avoids all forbidden topics.
func IsSafeQuery(text string) bool {
	lower := strings.ToLower(text)
	for _, topic := range forbiddenTopics {
		if strings.Contains(lower, topic) {
			return false
		}
	}
	return true
}

func (s *Service) handlePopularPhotos(ctx context.Context, q *query) *models.AskResponse {
	items := s.resolver.Resolve(ctx, q.analysis.Intent, q.analysis.Language, dynamic.DefaultLimit)
	if len(items) == 0 {
		// No dynamic content available; fall through to the default
		// handling.
		return nil
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.Text)
	}

	return &models.AskResponse{
		Text: s.catalog.DynamicResponse(q.analysis.Intent, q.analysis.Language, map[string]string{
			"photos_list": strings.Join(lines, "\n"),
		}),
		Dynamic: &models.DynamicBlock{
			Intro: s.catalog.DynamicIntro(q.analysis.Intent, q.analysis.Language),
			Items: items,
			Outro: s.catalog.DynamicOutro(q.analysis.Intent, q.analysis.Language),
		},
		IsDynamic: true,
	}
}

func (s *Service) handleGreeting(ctx context.Context, q *query) *models.AskResponse {
	if sc, err := s.sessions.GetOrCreate(ctx, q.sessionID); err == nil && !sc.HasIntroduced {
		if err := s.sessions.MarkIntroduced(ctx, q.sessionID); err != nil {
			s.logger.Warn("failed to mark session introduced", map[string]interface{}{
				"session_id": q.sessionID,
				"error":      err.Error(),
			})
		}
	}
	return &models.AskResponse{
		Text: s.catalog.Greeting(q.analysis.Language),
	}
}

func (s *Service) handleAbout(ctx context.Context, q *query) *models.AskResponse {
	return &models.AskResponse{
		Text: s.catalog.Response(catalog.IntentAbout, q.analysis.Language),
	}
}

func (s *Service) handleCasual(ctx context.Context, q *query) *models.AskResponse {
	return &models.AskResponse{
		Text: s.catalog.Response(catalog.IntentCasual, q.analysis.Language),
	}
}

func (s *Service) handleDefault(ctx context.Context, q *query) *models.AskResponse {
	return &models.AskResponse{
		Text:        s.catalog.NotUnderstood(q.analysis.Language),
		Suggestions: s.SuggestedQuestions(ctx, q.text, q.analysis.Language),
	}
}

// recordInteraction updates the session context and appends the
// interaction log entry. Both are best-effort: failures only affect
// persistence, never the returned payload.
func (s *Service) recordInteraction(ctx context.Context, q *query, resp *models.AskResponse) {
	if err := s.sessions.Update(ctx, q.sessionID, session.Entry{
		Query:    q.text,
		Response: resp.Text,
		Intent:   string(q.analysis.Intent),
	}); err != nil {
		s.logger.Warn("failed to update conversation context", map[string]interface{}{
			"session_id": q.sessionID,
			"error":      err.Error(),
		})
	}

	if err := s.logs.Append(ctx, chatlog.Record{
		SessionID:  q.sessionID,
		Question:   q.text,
		Answer:     resp.Text,
		Language:   string(q.analysis.Language),
		Sentiment:  q.analysis.Sentiment.Label,
		Intent:     string(q.analysis.Intent),
		Confidence: q.analysis.Confidence,
		IsHelpful:  chatlog.IsHelpful(q.analysis.Confidence, q.analysis.RequiresClarification),
	}); err != nil {
		s.logger.Warn("failed to append interaction log", map[string]interface{}{
			"session_id": q.sessionID,
			"error":      err.Error(),
		})
	}
}

// History returns the most recent past Q&A entries for a session.
func (s *Service) History(ctx context.Context, sessionID string, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	records, err := s.logs.History(ctx, sessionID, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]models.HistoryEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, models.HistoryEntry{
			Question:  rec.Question,
			Answer:    rec.Answer,
			Language:  rec.Language,
			Sentiment: rec.Sentiment,
			Intent:    rec.Intent,
			CreatedAt: rec.CreatedAt,
		})
	}
	return entries, nil
}

// Analytics returns the interaction log rollup.
func (s *Service) Analytics(ctx context.Context) (*models.AnalyticsResponse, error) {
	stats, err := s.logs.Stats(ctx)
	if err != nil {
		return nil, err
	}

	resp := &models.AnalyticsResponse{
		TotalInteractions: stats.Total,
		HelpfulRatio:      stats.HelpfulRatio,
	}
	for _, ic := range stats.Intents {
		resp.CommonIntents = append(resp.CommonIntents, models.IntentCount{Intent: ic.Intent, Count: ic.Count})
	}
	for _, lc := range stats.Languages {
		resp.Languages = append(resp.Languages, models.LanguageCount{Language: lc.Language, Count: lc.Count})
	}
	return resp, nil
}

// SuggestedQuestions ranks the catalog's question list for the language
// by embedding similarity to the query, returning the top three. When
// the embedder is unavailable or fails, the first three questions are
// returned unranked.
func (s *Service) SuggestedQuestions(ctx context.Context, text string, lang catalog.Language) []string {
	questions := s.catalog.SuggestedQuestions(lang)
	if len(questions) > maxSuggestions {
		fallback := questions[:maxSuggestions]

		if s.embedder == nil {
			return fallback
		}
		queryVec, err := s.embedder.Embed(ctx, text)
		if err != nil {
			metrics.InferenceFailures.WithLabelValues("embedding").Inc()
			return fallback
		}

		type scored struct {
			question string
			score    float64
		}
		ranked := make([]scored, 0, len(questions))
		for _, question := range questions {
			vec, err := s.embedder.Embed(ctx, question)
			if err != nil {
				metrics.InferenceFailures.WithLabelValues("embedding").Inc()
				return fallback
			}
			ranked = append(ranked, scored{question: question, score: cosineSimilarity(queryVec, vec)})
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].score > ranked[j].score
		})

		top := make([]string, 0, maxSuggestions)
		for _, r := range ranked[:maxSuggestions] {
			top = append(top, r.question)
		}
		return top
	}
	return questions
}

// Introduction returns the assistant's localized self introduction.
func (s *Service) Introduction(lang catalog.Language) string {
	return s.catalog.Introduction(lang)
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func errorResponse(sessionID, code, message string) *models.AskResponse {
	return &models.AskResponse{
		SessionID:    sessionID,
		ErrorCode:    &code,
		ErrorMessage: &message,
	}
}
