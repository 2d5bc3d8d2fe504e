package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mverdier/greenback/internal/model"
)

// RecordRun persists the summary of one completed analysis and returns the
// stored record with its generated ID.
func (s *SQLiteStorage) RecordRun(ctx context.Context, filename string, source model.RunSource, stats model.StatsSummary) (*model.Run, error) {
	run := &model.Run{
		ID:        uuid.New().String(),
		Filename:  filename,
		Source:    source,
		Stats:     stats,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, filename, source, total, genuine_count, fake_count,
			genuine_percentage, fake_percentage, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Filename, string(run.Source),
		run.Stats.Total, run.Stats.GenuineCount, run.Stats.FakeCount,
		run.Stats.GenuinePercentage, run.Stats.FakePercentage,
		run.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	return run, nil
}

// ListRuns returns the most recent runs, newest first, up to limit.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, source, total, genuine_count, fake_count,
			genuine_percentage, fake_percentage, created_at
		FROM runs
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		var source string
		if err := rows.Scan(&run.ID, &run.Filename, &source,
			&run.Stats.Total, &run.Stats.GenuineCount, &run.Stats.FakeCount,
			&run.Stats.GenuinePercentage, &run.Stats.FakePercentage,
			&run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Source = model.RunSource(source)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}
