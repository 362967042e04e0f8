package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumipallolabs/duview/internal/config"
	"github.com/lumipallolabs/duview/internal/fsys"
)

// Run scans path and runs the browser until the user quits
func Run(ctx context.Context, cfg *config.Config, fs fsys.FS, path string) error {
	p := tea.NewProgram(
		NewApp(ctx, cfg, fs, path),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if app, ok := final.(App); ok {
		return app.Err()
	}
	return nil
}
