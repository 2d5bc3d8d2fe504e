package tui

import (
	"github.com/mverdier/greenback/internal/model"
)

// fileLoadedMsg carries a parsed upload, or the reason it failed to parse.
type fileLoadedMsg struct {
	err      error
	table    *model.Table
	filename string
}

// analysisDoneMsg carries the pipeline result for the loaded table.
type analysisDoneMsg struct {
	err    error
	result *model.Result
}

// historyLoadedMsg carries recent run summaries from the store.
type historyLoadedMsg struct {
	err  error
	runs []model.Run
}
