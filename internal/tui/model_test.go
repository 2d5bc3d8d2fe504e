package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverdier/greenback/internal/model"
	"github.com/mverdier/greenback/internal/pipeline"
)

type identityScaler struct{}

func (identityScaler) Transform(vector []float64) ([]float64, error) {
	out := make([]float64, len(vector))
	copy(out, vector)
	return out, nil
}

type thresholdClassifier struct{}

func (thresholdClassifier) PredictWithConfidence(vector []float64) (int, [2]float64, error) {
	if vector[3] < 5.0 {
		return 1, [2]float64{0.15, 0.85}, nil
	}
	return 0, [2]float64{0.92, 0.08}, nil
}

func testModel(t *testing.T) Model {
	t.Helper()
	p, err := pipeline.New(identityScaler{}, thresholdClassifier{})
	require.NoError(t, err)
	return newModel(context.Background(), Config{Pipeline: p, PageSize: 10})
}

func resultWithPredictions(n int) *model.Result {
	predictions := make([]model.Prediction, n)
	for i := range predictions {
		label := model.LabelGenuine
		if i%3 == 0 {
			label = model.LabelFake
		}
		predictions[i] = model.Prediction{ID: i + 1, Label: label, Probability: 0.8}
	}
	return &model.Result{
		Predictions: predictions,
		Stats:       pipeline.Aggregate(predictions),
	}
}

func updateModel(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next
}

func TestFileLoadedMovesToPreview(t *testing.T) {
	m := testModel(t)

	table := &model.Table{Columns: []string{"diagonal"}, Rows: [][]string{{"171.8"}}}
	m = updateModel(t, m, fileLoadedMsg{table: table, filename: "notes.csv"})

	assert.Equal(t, statePreview, m.state)
	assert.Equal(t, "notes.csv", m.filename)
	assert.Contains(t, m.View(), "notes.csv")
}

func TestFileLoadErrorStaysOnPicker(t *testing.T) {
	m := testModel(t)

	m = updateModel(t, m, fileLoadedMsg{err: errors.New("no such file")})

	assert.Equal(t, statePicking, m.state)
	assert.Contains(t, m.View(), "no such file")
}

func TestAnalysisDoneShowsPaginatedResults(t *testing.T) {
	m := testModel(t)
	m = updateModel(t, m, fileLoadedMsg{table: &model.Table{}, filename: "notes.csv"})
	m = updateModel(t, m, analysisDoneMsg{result: resultWithPredictions(25)})

	require.Equal(t, stateResults, m.state)

	start, end := m.pageBounds()
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)
	assert.Equal(t, 3, m.pager.TotalPages)

	view := m.View()
	assert.Contains(t, view, "Note #1")
	assert.Contains(t, view, "Note #10")
	assert.NotContains(t, view, "Note #11")

	// Page forward.
	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRight})
	start, end = m.pageBounds()
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)
}

func TestAnalysisErrorReturnsToPreview(t *testing.T) {
	m := testModel(t)
	m = updateModel(t, m, fileLoadedMsg{table: &model.Table{}, filename: "notes.csv"})
	m.state = stateAnalyzing

	m = updateModel(t, m, analysisDoneMsg{err: errors.New("missing required columns: [length]")})

	assert.Equal(t, statePreview, m.state)
	assert.Contains(t, m.View(), "missing required columns")
}

func TestStatsToggle(t *testing.T) {
	m := testModel(t)
	m = updateModel(t, m, fileLoadedMsg{table: &model.Table{}, filename: "notes.csv"})
	m = updateModel(t, m, analysisDoneMsg{result: resultWithPredictions(6)})

	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	assert.True(t, m.showStats)
	view := m.View()
	assert.Contains(t, view, "Share of batch")
	assert.Contains(t, view, "Mean confidence per class")

	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	assert.False(t, m.showStats)
}

func TestHistoryView(t *testing.T) {
	m := testModel(t)
	m = updateModel(t, m, fileLoadedMsg{table: &model.Table{}, filename: "notes.csv"})
	m = updateModel(t, m, analysisDoneMsg{result: resultWithPredictions(2)})

	m = updateModel(t, m, historyLoadedMsg{runs: []model.Run{
		{Filename: "yesterday.csv", Stats: model.StatsSummary{Total: 7, GenuinePercentage: 100}},
	}})

	require.Equal(t, stateHistory, m.state)
	assert.Contains(t, m.View(), "yesterday.csv")

	m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateResults, m.state)
}

func TestQuitFromResults(t *testing.T) {
	m := testModel(t)
	m = updateModel(t, m, fileLoadedMsg{table: &model.Table{}, filename: "notes.csv"})
	m = updateModel(t, m, analysisDoneMsg{result: resultWithPredictions(1)})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.True(t, updated.(Model).quitting)
}

func TestMeanConfidence(t *testing.T) {
	predictions := []model.Prediction{
		{Label: model.LabelGenuine, Probability: 0.9},
		{Label: model.LabelGenuine, Probability: 0.7},
		{Label: model.LabelFake, Probability: 0.6},
	}

	assert.InDelta(t, 0.8, meanConfidence(predictions, model.LabelGenuine), 1e-9)
	assert.InDelta(t, 0.6, meanConfidence(predictions, model.LabelFake), 1e-9)
	assert.Zero(t, meanConfidence(nil, model.LabelGenuine))
}

func TestConfidenceBarWidth(t *testing.T) {
	for _, p := range []float64{0, 0.33, 0.5, 1} {
		bar := confidenceBar(model.Prediction{Label: model.LabelGenuine, Probability: p})
		plain := strings.NewReplacer("\x1b", "").Replace(bar)
		filled := strings.Count(plain, "█")
		empty := strings.Count(plain, "░")
		assert.Equal(t, 30, filled+empty, fmt.Sprintf("probability %v", p))
	}
}

func TestPreviewTruncatesRows(t *testing.T) {
	rows := make([][]string, 12)
	for i := range rows {
		rows[i] = []string{fmt.Sprintf("%d", i)}
	}
	m := testModel(t)
	m = updateModel(t, m, fileLoadedMsg{
		table:    &model.Table{Columns: []string{"diagonal"}, Rows: rows},
		filename: "big.csv",
	})

	view := m.View()
	assert.Contains(t, view, "… 7 more rows")
}
