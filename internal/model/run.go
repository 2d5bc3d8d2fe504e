package model

import "time"

// RunSource identifies which surface triggered an analysis run.
type RunSource string

// Run sources.
const (
	SourceHTTP      RunSource = "http"
	SourceDashboard RunSource = "dashboard"
	SourceCLI       RunSource = "cli"
)

// Run is the retained record of one completed analysis: the batch summary
// plus where it came from. Only aggregate statistics are kept; uploaded
// measurements are never persisted.
type Run struct {
	CreatedAt time.Time    `json:"created_at"`
	ID        string       `json:"id"`
	Filename  string       `json:"filename"`
	Source    RunSource    `json:"source"`
	Stats     StatsSummary `json:"stats"`
}
