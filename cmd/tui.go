package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"interestsearch/internal/ui"
)

// TUICommand creates the interactive search command
func TUICommand() *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Search interactively (default)",
		Action: withEnv(runTUI),
	}
}

func runTUI(ctx context.Context, c *cli.Command, e *env) error {
	p, err := e.newProvider()
	if err != nil {
		return err
	}

	model := ui.NewModel(ui.Options{
		Provider:   p,
		Config:     e.cfg,
		Controller: e.newController(),
		Logger:     e.log,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(program)

	// the pty harness waits for this before sending keys
	if os.Getenv("INTERESTSEARCH_E2E_TEST") == "1" {
		fmt.Fprintln(c.Root().Writer, "__READY__")
	}

	e.log.Info("starting UI")
	if _, err := program.Run(); err != nil {
		e.log.WithError(err).Error("error running program")
		return fmt.Errorf("running UI: %w", err)
	}
	e.log.Info("UI exited normally")
	return nil
}
