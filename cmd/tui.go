package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/insure/internal/shared"
	"github.com/desertthunder/insure/internal/ui"
	"github.com/desertthunder/insure/internal/workflow"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive recommendation workflow.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/insure-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	controller := workflow.NewController(r.session, r.svc)
	model := ui.NewModel(ctx, controller, r.history, fileLogger)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
