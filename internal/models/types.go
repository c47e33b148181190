package models

import "time"

// AskRequest is the inbound "ask" payload. SessionID may be empty, in
// which case the service assigns a fresh one and echoes it back.
type AskRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

// CategoryRef identifies the category a dynamic result belongs to.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// AlbumRef identifies the album a dynamic result belongs to.
type AlbumRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// DynamicItem is one entry of a dynamic response computed from live
// gallery data.
type DynamicItem struct {
	ID       int64       `json:"id"`
	Type     string      `json:"type"`
	Title    string      `json:"title"`
	Slug     string      `json:"slug"`
	Likes    int         `json:"likes"`
	Category CategoryRef `json:"category"`
	Album    AlbumRef    `json:"album"`
	Text     string      `json:"text"`
}

// DynamicBlock is the structured body of a dynamic response.
type DynamicBlock struct {
	Intro string        `json:"intro"`
	Items []DynamicItem `json:"items"`
	Outro string        `json:"outro"`
}

// AskResponse is the outbound "ask" payload. Static replies carry Text;
// dynamic replies additionally carry Dynamic and IsDynamic=true.
type AskResponse struct {
	SessionID    string        `json:"session_id"`
	Text         string        `json:"text,omitempty"`
	Dynamic      *DynamicBlock `json:"dynamic,omitempty"`
	IsDynamic    bool          `json:"isDynamic,omitempty"`
	Suggestions  []string      `json:"suggestions,omitempty"`
	ErrorCode    *string       `json:"error_code,omitempty"`
	ErrorMessage *string       `json:"error_message,omitempty"`
}

// HistoryRequest asks for past Q&A entries of a session.
type HistoryRequest struct {
	SessionID string `json:"session_id"`
	Limit     int    `json:"limit,omitempty"`
}

type HistoryEntry struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Language  string    `json:"language"`
	Sentiment string    `json:"sentiment"`
	Intent    string    `json:"intent"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryResponse struct {
	SessionID string         `json:"session_id"`
	Entries   []HistoryEntry `json:"entries"`
	ErrorCode *string        `json:"error_code,omitempty"`
}

// AnalyticsResponse is the interaction log rollup.
type AnalyticsResponse struct {
	TotalInteractions int             `json:"total_interactions"`
	HelpfulRatio      float64         `json:"helpful_ratio"`
	CommonIntents     []IntentCount   `json:"common_intents"`
	Languages         []LanguageCount `json:"language_distribution"`
	ErrorCode         *string         `json:"error_code,omitempty"`
}

type IntentCount struct {
	Intent string `json:"intent"`
	Count  int    `json:"count"`
}

type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// Error codes
const (
	ErrorEmptyQuestion = "EMPTY_QUESTION"
	ErrorParseError    = "PARSE_ERROR"
	ErrorInternal      = "INTERNAL_ERROR"
	ErrorStoreFailed   = "STORE_FAILED"
)
