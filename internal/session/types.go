package session

import (
	"context"
	"time"
)

// HistoryCap bounds the rolling conversation history per session.
const HistoryCap = 5

// Entry is one recorded turn of a conversation.
type Entry struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Intent    string    `json:"intent"`
	Timestamp time.Time `json:"timestamp"`
}

// History is a bounded FIFO of conversation turns. Pushing beyond
// HistoryCap evicts the oldest entry, so the bound holds structurally.
type History struct {
	entries []Entry
}

func (h *History) Push(e Entry) {
	h.entries = append(h.entries, e)
	if len(h.entries) > HistoryCap {
		h.entries = h.entries[len(h.entries)-HistoryCap:]
	}
}

func (h *History) Entries() []Entry {
	return h.entries
}

func (h *History) Len() int {
	return len(h.entries)
}

// Context is the per-session conversation state.
type Context struct {
	SessionID        string    `json:"session_id"`
	LastQuery        string    `json:"last_query"`
	LastIntent       string    `json:"last_intent"`
	LastTopic        string    `json:"last_topic"`
	InteractionCount int       `json:"interaction_count"`
	HasIntroduced    bool      `json:"has_introduced"`
	History          []Entry   `json:"conversation_history"`
	StartedAt        time.Time `json:"started_at"`
	LastActivity     time.Time `json:"last_activity"`
}

// NewContext returns the fresh state a session starts from.
func NewContext(sessionID string) *Context {
	now := time.Now().UTC()
	return &Context{
		SessionID:    sessionID,
		History:      []Entry{},
		StartedAt:    now,
		LastActivity: now,
	}
}

// Store persists session contexts. Implementations must support
// concurrent access across different session ids.
type Store interface {
	// Load returns the stored context, or a fresh one when the session
	// is unknown.
	Load(ctx context.Context, sessionID string) (*Context, error)

	// Save writes the context back, refreshing its TTL.
	Save(ctx context.Context, sc *Context) error

	// Clear removes a session.
	Clear(ctx context.Context, sessionID string) error

	// Exists checks whether a session is stored.
	Exists(ctx context.Context, sessionID string) (bool, error)
}
