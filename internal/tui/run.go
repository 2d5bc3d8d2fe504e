package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the dashboard and blocks until the user quits.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Pipeline == nil {
		return fmt.Errorf("pipeline is required")
	}

	m := newModel(ctx, cfg)
	if cfg.Path != "" {
		m.pathInput.SetValue(cfg.Path)
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
