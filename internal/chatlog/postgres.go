package chatlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresStore implements Store against the interaction_logs table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const appendQuery = `
INSERT INTO interaction_logs
    (session_id, question, answer, language, sentiment, intent, confidence_score, is_helpful, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (s *PostgresStore) Append(ctx context.Context, rec Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, appendQuery,
		rec.SessionID, rec.Question, rec.Answer, rec.Language,
		rec.Sentiment, rec.Intent, rec.Confidence, rec.IsHelpful, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append interaction log: %w", err)
	}
	return nil
}

const historyQuery = `
SELECT session_id, question, answer, language, sentiment, intent, confidence_score, is_helpful, created_at
FROM interaction_logs
WHERE session_id = $1
ORDER BY created_at DESC
LIMIT $2`

func (s *PostgresStore) History(ctx context.Context, sessionID string, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, historyQuery, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.SessionID, &rec.Question, &rec.Answer, &rec.Language,
			&rec.Sentiment, &rec.Intent, &rec.Confidence, &rec.IsHelpful, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return records, nil
}

const totalsQuery = `
SELECT COUNT(*), COUNT(*) FILTER (WHERE is_helpful)
FROM interaction_logs`

const intentDistQuery = `
SELECT intent, COUNT(*) AS count
FROM interaction_logs
GROUP BY intent
ORDER BY count DESC
LIMIT 5`

const languageDistQuery = `
SELECT language, COUNT(*) AS count
FROM interaction_logs
GROUP BY language
ORDER BY count DESC`

func (s *PostgresStore) Stats(ctx context.Context) (Analytics, error) {
	var stats Analytics

	var helpful int
	if err := s.db.QueryRowContext(ctx, totalsQuery).Scan(&stats.Total, &helpful); err != nil {
		return Analytics{}, fmt.Errorf("query totals: %w", err)
	}
	if stats.Total > 0 {
		stats.HelpfulRatio = float64(helpful) / float64(stats.Total)
	}

	intentRows, err := s.db.QueryContext(ctx, intentDistQuery)
	if err != nil {
		return Analytics{}, fmt.Errorf("query intent distribution: %w", err)
	}
	defer intentRows.Close()
	for intentRows.Next() {
		var ic IntentCount
		if err := intentRows.Scan(&ic.Intent, &ic.Count); err != nil {
			return Analytics{}, fmt.Errorf("scan intent row: %w", err)
		}
		stats.Intents = append(stats.Intents, ic)
	}
	if err := intentRows.Err(); err != nil {
		return Analytics{}, fmt.Errorf("iterate intent rows: %w", err)
	}

	langRows, err := s.db.QueryContext(ctx, languageDistQuery)
	if err != nil {
		return Analytics{}, fmt.Errorf("query language distribution: %w", err)
	}
	defer langRows.Close()
	for langRows.Next() {
		var lc LanguageCount
		if err := langRows.Scan(&lc.Language, &lc.Count); err != nil {
			return Analytics{}, fmt.Errorf("scan language row: %w", err)
		}
		stats.Languages = append(stats.Languages, lc)
	}
	if err := langRows.Err(); err != nil {
		return Analytics{}, fmt.Errorf("iterate language rows: %w", err)
	}

	return stats, nil
}
