// Package tui implements the interactive analysis dashboard. It is a thin
// front-end over the classification pipeline: it loads a file, calls
// Classify, and renders the result; no prediction logic lives here and no
// display state ever feeds back into the pipeline.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mverdier/greenback/internal/model"
	"github.com/mverdier/greenback/internal/pipeline"
)

// state identifies the current dashboard screen.
type state int

const (
	statePicking state = iota
	statePreview
	stateAnalyzing
	stateResults
	stateHistory
)

// defaultPageSize is how many predictions one results page shows.
const defaultPageSize = 10

// previewRows is how many data rows the preview screen shows.
const previewRows = 5

// Config holds the dashboard dependencies and settings.
type Config struct {
	Pipeline *pipeline.Pipeline
	Store    RunStore
	Path     string
	PageSize int
}

// Model holds the dashboard state.
type Model struct {
	ctx         context.Context
	pipeline    *pipeline.Pipeline
	store       RunStore
	err         error
	table       *model.Table
	result      *model.Result
	runs        []model.Run
	filename    string
	keymap      KeyMap
	pathInput   textinput.Model
	pager       paginator.Model
	genuineBar  progress.Model
	fakeBar     progress.Model
	spin        spinner.Model
	pageSize    int
	width       int
	height      int
	state       state
	showStats   bool
	quitting    bool
}

// newModel builds the initial dashboard model.
func newModel(ctx context.Context, cfg Config) Model {
	input := textinput.New()
	input.Placeholder = "path/to/notes.csv"
	input.Focus()

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.PerPage = pageSize

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		ctx:        ctx,
		pipeline:   cfg.Pipeline,
		store:      cfg.Store,
		keymap:     DefaultKeyMap(),
		pathInput:  input,
		pager:      pager,
		genuineBar: progress.New(progress.WithSolidFill(string(successColor))),
		fakeBar:    progress.New(progress.WithSolidFill(string(dangerColor))),
		spin:       spin,
		pageSize:   pageSize,
		state:      statePicking,
	}
}

// Init starts the dashboard, loading the initial file when one was given.
func (m Model) Init() tea.Cmd {
	if path := m.pathInput.Value(); path != "" {
		return loadFileCmd(path)
	}
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		barWidth := min(m.width-10, 40)
		m.genuineBar.Width = barWidth
		m.fakeBar.Width = barWidth
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case fileLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = statePicking
			return m, nil
		}
		m.err = nil
		m.table = msg.table
		m.filename = msg.filename
		m.result = nil
		m.state = statePreview
		return m, nil

	case analysisDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = statePreview
			return m, nil
		}
		m.err = nil
		m.result = msg.result
		m.showStats = false
		m.pager.Page = 0
		m.pager.SetTotalPages(len(msg.result.Predictions))
		m.state = stateResults
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.runs = msg.runs
		m.state = stateHistory
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	if m.state == statePicking {
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Quit) && m.state != statePicking {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case statePicking:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if path := m.pathInput.Value(); path != "" {
				return m, loadFileCmd(path)
			}
			return m, nil
		default:
			var cmd tea.Cmd
			m.pathInput, cmd = m.pathInput.Update(msg)
			return m, cmd
		}

	case statePreview:
		switch {
		case key.Matches(msg, m.keymap.Analyze):
			m.state = stateAnalyzing
			return m, tea.Batch(
				m.spin.Tick,
				analyzeCmd(m.ctx, m.pipeline, m.store, m.table, m.filename),
			)
		case key.Matches(msg, m.keymap.OpenFile):
			return m.toPicker()
		}

	case stateResults:
		switch {
		case key.Matches(msg, m.keymap.Left):
			m.pager.PrevPage()
		case key.Matches(msg, m.keymap.Right):
			m.pager.NextPage()
		case key.Matches(msg, m.keymap.ToggleStats):
			m.showStats = !m.showStats
		case key.Matches(msg, m.keymap.History):
			return m, loadHistoryCmd(m.ctx, m.store)
		case key.Matches(msg, m.keymap.OpenFile):
			return m.toPicker()
		}

	case stateHistory:
		if key.Matches(msg, m.keymap.Back) {
			if m.result != nil {
				m.state = stateResults
			} else {
				m.state = statePreview
			}
		}

	case stateAnalyzing:
		// No interaction while the batch scores.
	}

	return m, nil
}

func (m Model) toPicker() (tea.Model, tea.Cmd) {
	m.state = statePicking
	m.err = nil
	m.pathInput.SetValue("")
	m.pathInput.Focus()
	return m, textinput.Blink
}

// pageBounds returns the [start, end) slice of predictions on the current
// results page.
func (m Model) pageBounds() (int, int) {
	if m.result == nil {
		return 0, 0
	}
	return m.pager.GetSliceBounds(len(m.result.Predictions))
}
