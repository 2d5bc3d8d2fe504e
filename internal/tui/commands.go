package tui

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mverdier/greenback/internal/ingest"
	"github.com/mverdier/greenback/internal/model"
	"github.com/mverdier/greenback/internal/pipeline"
)

// RunStore is the slice of the run-history store the dashboard needs.
type RunStore interface {
	RecordRun(ctx context.Context, filename string, source model.RunSource, stats model.StatsSummary) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)
}

// loadFileCmd reads and parses a delimited file from disk.
func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return fileLoadedMsg{err: err}
		}
		table, err := ingest.Decode(data)
		if err != nil {
			return fileLoadedMsg{err: err}
		}
		return fileLoadedMsg{table: table, filename: filepath.Base(path)}
	}
}

// analyzeCmd runs the pipeline over the loaded table and records the run.
// The dashboard calls the same Classify entry point as the HTTP surface.
func analyzeCmd(ctx context.Context, p *pipeline.Pipeline, store RunStore, table *model.Table, filename string) tea.Cmd {
	return func() tea.Msg {
		result, err := p.Classify(ctx, table)
		if err != nil {
			return analysisDoneMsg{err: err}
		}
		if store != nil {
			if _, err := store.RecordRun(ctx, filename, model.SourceDashboard, result.Stats); err != nil {
				slog.Warn("failed to record dashboard run", "filename", filename, "error", err)
			}
		}
		return analysisDoneMsg{result: result}
	}
}

// loadHistoryCmd fetches recent run summaries.
func loadHistoryCmd(ctx context.Context, store RunStore) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return historyLoadedMsg{}
		}
		runs, err := store.ListRuns(ctx, 20)
		if err != nil {
			return historyLoadedMsg{err: err}
		}
		return historyLoadedMsg{runs: runs}
	}
}
