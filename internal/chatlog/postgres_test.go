package chatlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHelpfulBoundaries(t *testing.T) {
	// Exactly 0.7 is not strictly greater.
	assert.False(t, IsHelpful(0.7, false))
	assert.True(t, IsHelpful(0.71, false))
	assert.False(t, IsHelpful(0.71, true))
	assert.True(t, IsHelpful(0.8, false))
	assert.False(t, IsHelpful(0.0, false))
}

func TestAppend(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO interaction_logs").
		WithArgs("s1", "hai", "halo!", "id", "3 stars", "greeting", 0.8, true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = NewPostgresStore(db).Append(context.Background(), Record{
		SessionID:  "s1",
		Question:   "hai",
		Answer:     "halo!",
		Language:   "id",
		Sentiment:  "3 stars",
		Intent:     "greeting",
		Confidence: 0.8,
		IsHelpful:  true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryOrderedMostRecentFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"session_id", "question", "answer", "language", "sentiment",
		"intent", "confidence_score", "is_helpful", "created_at",
	}).
		AddRow("s1", "kedua", "jawaban 2", "id", "3 stars", "general", 0.5, false, now).
		AddRow("s1", "pertama", "jawaban 1", "id", "3 stars", "greeting", 0.8, true, now.Add(-time.Minute))

	mock.ExpectQuery("SELECT session_id, question, answer").
		WithArgs("s1", 10).
		WillReturnRows(rows)

	records, err := NewPostgresStore(db).History(context.Background(), "s1", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "kedua", records[0].Question)
	assert.Equal(t, "pertama", records[1].Question)
}

func TestStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\), COUNT\(\*\) FILTER`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "helpful"}).AddRow(10, 7))
	mock.ExpectQuery("SELECT intent, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"intent", "count"}).
			AddRow("greeting", 6).
			AddRow("about", 4))
	mock.ExpectQuery("SELECT language, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"language", "count"}).
			AddRow("id", 8).
			AddRow("en", 2))

	stats, err := NewPostgresStore(db).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Total)
	assert.InDelta(t, 0.7, stats.HelpfulRatio, 1e-9)
	require.Len(t, stats.Intents, 2)
	assert.Equal(t, IntentCount{Intent: "greeting", Count: 6}, stats.Intents[0])
	require.Len(t, stats.Languages, 2)
	assert.Equal(t, LanguageCount{Language: "id", Count: 8}, stats.Languages[0])
}

func TestStatsEmptyTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\), COUNT\(\*\) FILTER`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "helpful"}).AddRow(0, 0))
	mock.ExpectQuery("SELECT intent, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"intent", "count"}))
	mock.ExpectQuery("SELECT language, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"language", "count"}))

	stats, err := NewPostgresStore(db).Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.HelpfulRatio)
}

func TestAppendError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO interaction_logs").
		WillReturnError(errors.New("disk full"))

	err = NewPostgresStore(db).Append(context.Background(), Record{SessionID: "s1"})
	assert.Error(t, err)
}
