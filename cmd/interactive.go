package cmd

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"eventscout/internal/logging"
	"eventscout/internal/ui"
)

// runInteractive starts the terminal UI. Logs go to a file because the
// program owns the terminal.
func runInteractive(ctx context.Context, o *rootOptions) error {
	a, err := newApp(ctx, o, logging.DefaultFile())
	if err != nil {
		return err
	}
	defer a.Close()

	sortKey, _ := a.cfg.SortKey()
	model := ui.NewModel(ctx, a.controller, ui.Options{
		MaxEvents:        a.cfg.Search.DefaultMaxEvents,
		ShowDescriptions: a.cfg.Search.ShowDescriptions,
		Sort:             sortKey,
		Warning:          a.warning,
		Bus:              a.bus,
		Logger:           a.logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	a.logger.Info("starting UI")
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			a.logger.Info("UI interrupted")
			return nil
		}
		a.logger.Error("UI exited with error", zap.Error(err))
		return fmt.Errorf("error running program: %w", err)
	}
	a.logger.Info("UI exited normally")
	return nil
}
