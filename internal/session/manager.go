package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/memory"

	"github.com/galeriku/gallery-assistant/internal/logger"
)

// topicKeywords is the fixed keyword-to-topic mapping used for
// last_topic extraction.
var topicKeywords = map[string][]string{
	"photo":    {"foto", "gambar", "picture", "image"},
	"search":   {"cari", "search", "find"},
	"help":     {"bantuan", "help", "guide"},
	"category": {"kategori", "category", "album"},
}

var topicOrder = []string{"photo", "search", "help", "category"}

// ExtractTopic maps a query onto its conversation topic, defaulting to
// "general" when no keyword matches.
func ExtractTopic(query string) string {
	lower := strings.ToLower(query)
	for _, topic := range topicOrder {
		for _, keyword := range topicKeywords[topic] {
			if strings.Contains(lower, keyword) {
				return topic
			}
		}
	}
	return "general"
}

// Manager owns conversation context persistence. Mutations for a given
// session id are serialized through a per-session lock; different
// sessions update fully in parallel. An in-memory langchaingo buffer
// per session mirrors the persisted history for prompt-style context
// formatting.
type Manager struct {
	store  Store
	logger logger.Logger

	mu      sync.Mutex
	locks   map[string]*sync.Mutex
	buffers map[string]*memory.ConversationBuffer
}

func NewManager(store Store, log logger.Logger) *Manager {
	return &Manager{
		store: store,
		logger: log.With(map[string]interface{}{
			"component": "session",
		}),
		locks:   make(map[string]*sync.Mutex),
		buffers: make(map[string]*memory.ConversationBuffer),
	}
}

func (m *Manager) sessionLock(sessionID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[sessionID] = lock
	}
	return lock
}

// GetOrCreate returns the session's context, creating the empty state
// for unknown session ids.
func (m *Manager) GetOrCreate(ctx context.Context, sessionID string) (*Context, error) {
	return m.store.Load(ctx, sessionID)
}

// Update appends one conversation turn: pushes the history entry,
// evicts beyond the cap, bumps the interaction count and refreshes the
// last query/intent/topic.
func (m *Manager) Update(ctx context.Context, sessionID string, entry Entry) error {
	lock := m.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sc, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	history := History{entries: sc.History}
	history.Push(entry)
	sc.History = history.Entries()

	sc.LastQuery = entry.Query
	sc.LastIntent = entry.Intent
	sc.LastTopic = ExtractTopic(entry.Query)
	sc.InteractionCount++
	sc.LastActivity = entry.Timestamp

	if err := m.store.Save(ctx, sc); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if err := m.mirrorToBuffer(ctx, sessionID, entry); err != nil {
		// Buffer mirroring is a cache concern; persistence already
		// succeeded.
		m.logger.Warn("failed to mirror turn into buffer", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	return nil
}

// MarkIntroduced sets the one-shot introduction flag.
func (m *Manager) MarkIntroduced(ctx context.Context, sessionID string) error {
	lock := m.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sc, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if sc.HasIntroduced {
		return nil
	}
	sc.HasIntroduced = true
	return m.store.Save(ctx, sc)
}

func (m *Manager) buffer(ctx context.Context, sessionID string) (*memory.ConversationBuffer, error) {
	m.mu.Lock()
	buf, ok := m.buffers[sessionID]
	m.mu.Unlock()
	if ok {
		return buf, nil
	}

	buf = memory.NewConversationBuffer()

	sc, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	for _, entry := range sc.History {
		if err := buf.ChatHistory.AddMessage(ctx, llms.HumanChatMessage{Content: entry.Query}); err != nil {
			return nil, fmt.Errorf("add user message: %w", err)
		}
		if err := buf.ChatHistory.AddMessage(ctx, llms.AIChatMessage{Content: entry.Response}); err != nil {
			return nil, fmt.Errorf("add assistant message: %w", err)
		}
	}

	m.mu.Lock()
	m.buffers[sessionID] = buf
	m.mu.Unlock()
	return buf, nil
}

func (m *Manager) mirrorToBuffer(ctx context.Context, sessionID string, entry Entry) error {
	buf, err := m.buffer(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := buf.ChatHistory.AddUserMessage(ctx, entry.Query); err != nil {
		return err
	}
	return buf.ChatHistory.AddAIMessage(ctx, entry.Response)
}

// FormattedHistory renders the mirrored conversation as prompt-style
// lines ("User: ...", "Assistant: ...").
func (m *Manager) FormattedHistory(ctx context.Context, sessionID string) ([]string, error) {
	buf, err := m.buffer(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	messages, err := buf.ChatHistory.Messages(ctx)
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}

	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		switch m := msg.(type) {
		case llms.HumanChatMessage:
			lines = append(lines, "User: "+m.Content)
		case llms.AIChatMessage:
			lines = append(lines, "Assistant: "+m.Content)
		case llms.SystemChatMessage:
			lines = append(lines, "System: "+m.Content)
		}
	}
	return lines, nil
}

// Clear removes a session from the buffer cache and the store.
func (m *Manager) Clear(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.buffers, sessionID)
	delete(m.locks, sessionID)
	m.mu.Unlock()

	if err := m.store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// ActiveSessions returns the number of cached conversation buffers.
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buffers)
}

// Close releases the underlying store when it is closable.
func (m *Manager) Close() error {
	if closer, ok := m.store.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
