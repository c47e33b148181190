package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galeriku/gallery-assistant/internal/logger"
)

func newTestStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore("redis://"+mr.Addr(), 30*time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestManager(t *testing.T) *Manager {
	return NewManager(newTestStore(t), logger.NewTestLogger(t))
}

func TestHistoryPushBoundedFIFO(t *testing.T) {
	var h History
	for i := 0; i < 12; i++ {
		h.Push(Entry{Query: fmt.Sprintf("q%d", i)})
		assert.LessOrEqual(t, h.Len(), HistoryCap)
	}
	require.Equal(t, HistoryCap, h.Len())
	// Oldest entries evicted first.
	assert.Equal(t, "q7", h.Entries()[0].Query)
	assert.Equal(t, "q11", h.Entries()[4].Query)
}

func TestLoadUnknownSessionReturnsFreshContext(t *testing.T) {
	store := newTestStore(t)

	sc, err := store.Load(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Equal(t, "unknown", sc.SessionID)
	assert.Zero(t, sc.InteractionCount)
	assert.False(t, sc.HasIntroduced)
	assert.Empty(t, sc.History)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sc := NewContext("s1")
	sc.LastQuery = "hai"
	sc.LastIntent = "greeting"
	sc.InteractionCount = 3
	sc.History = []Entry{{Query: "hai", Response: "halo!", Intent: "greeting", Timestamp: time.Now().UTC()}}
	require.NoError(t, store.Save(ctx, sc))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "hai", loaded.LastQuery)
	assert.Equal(t, "greeting", loaded.LastIntent)
	assert.Equal(t, 3, loaded.InteractionCount)
	require.Len(t, loaded.History, 1)

	exists, err := store.Exists(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Clear(ctx, "s1"))
	exists, err = store.Exists(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestManagerUpdateSequence(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	const n = 8
	for i := 0; i < n; i++ {
		err := m.Update(ctx, "s1", Entry{
			Query:    fmt.Sprintf("foto nomor %d", i),
			Response: "ini dia",
			Intent:   "popular_photos",
		})
		require.NoError(t, err)
	}

	sc, err := m.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, n, sc.InteractionCount)
	assert.Equal(t, HistoryCap, len(sc.History))
	assert.Equal(t, fmt.Sprintf("foto nomor %d", n-1), sc.LastQuery)
	assert.Equal(t, "popular_photos", sc.LastIntent)
	assert.Equal(t, "photo", sc.LastTopic)
	// Oldest beyond the cap evicted.
	assert.Equal(t, fmt.Sprintf("foto nomor %d", n-HistoryCap), sc.History[0].Query)
}

func TestManagerLastIntentTracksMostRecent(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Update(ctx, "s1", Entry{Query: "hai", Response: "halo", Intent: "greeting"}))
	require.NoError(t, m.Update(ctx, "s1", Entry{Query: "tentang galeri", Response: "...", Intent: "about"}))

	sc, err := m.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "about", sc.LastIntent)
}

func TestManagerSessionsAreIndependent(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Update(ctx, "a", Entry{Query: "hai", Response: "halo", Intent: "greeting"}))

	sc, err := m.GetOrCreate(ctx, "b")
	require.NoError(t, err)
	assert.Zero(t, sc.InteractionCount)
}

func TestManagerConcurrentUpdatesSameSession(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = m.Update(ctx, "shared", Entry{
				Query:    fmt.Sprintf("q%d", i),
				Response: "r",
				Intent:   "general",
			})
		}(i)
	}
	wg.Wait()

	sc, err := m.GetOrCreate(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, writers, sc.InteractionCount)
	assert.Equal(t, HistoryCap, len(sc.History))
}

func TestManagerFormattedHistory(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.Update(ctx, "s1", Entry{Query: "hai", Response: "halo!", Intent: "greeting"}))

	lines, err := m.FormattedHistory(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "User: hai", lines[0])
	assert.Equal(t, "Assistant: halo!", lines[1])
}

func TestManagerMarkIntroduced(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, m.MarkIntroduced(ctx, "s1"))
	sc, err := m.GetOrCreate(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, sc.HasIntroduced)

	// Idempotent.
	require.NoError(t, m.MarkIntroduced(ctx, "s1"))
}

func TestExtractTopic(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"lihat foto dong", "photo"},
		{"search for something", "search"},
		{"butuh bantuan", "help"},
		{"album keluarga", "category"},
		{"hmm", "general"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractTopic(tt.query), "query %q", tt.query)
	}
}
