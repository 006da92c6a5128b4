package db

import (
	"context"
	"fmt"
	"time"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/models"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/classifier"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/orchestrator"
)

// Run is one persisted extraction outcome.
type Run struct {
	ID          string
	URL         string
	Domain      string
	Method      models.ExtractionMethod
	ContentType models.ContentType
	Confidence  float64
	CharCount   int
	WordCount   int
	Duration    time.Duration
	CreatedAt   time.Time
}

// RecordRun inserts a completed extraction. Implements the orchestrator's
// Recorder interface.
func (db *DB) RecordRun(ctx context.Context, run orchestrator.RunRecord) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO runs (run_id, url, domain, method, content_type, confidence, char_count, word_count, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.URL,
		classifier.Domain(run.URL),
		string(run.Method),
		string(run.ContentType),
		run.Confidence,
		run.CharCount,
		run.WordCount,
		run.Duration.Milliseconds(),
		run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (db *DB) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.QueryContext(ctx, `
		SELECT run_id, url, domain, method, content_type, confidence, char_count, word_count, duration_ms, created_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			method     string
			contentTyp string
			durationMS int64
			createdAt  string
		)
		if err := rows.Scan(&r.ID, &r.URL, &r.Domain, &method, &contentTyp, &r.Confidence, &r.CharCount, &r.WordCount, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Method = models.ExtractionMethod(method)
		r.ContentType = models.ContentType(contentTyp)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// MethodCount is one row of the per-method run histogram.
type MethodCount struct {
	Method        models.ExtractionMethod
	Runs          int
	AvgConfidence float64
}

// CountByMethod returns how many runs each method won, with the average
// confidence among them, most-used first.
func (db *DB) CountByMethod(ctx context.Context) ([]MethodCount, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT method, COUNT(*), AVG(confidence)
		FROM runs
		GROUP BY method
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query method counts: %w", err)
	}
	defer rows.Close()

	var counts []MethodCount
	for rows.Next() {
		var (
			c      MethodCount
			method string
		)
		if err := rows.Scan(&method, &c.Runs, &c.AvgConfidence); err != nil {
			return nil, fmt.Errorf("failed to scan method count: %w", err)
		}
		c.Method = models.ExtractionMethod(method)
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
