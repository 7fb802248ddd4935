package main

import (
	"fmt"

	"codeberg.org/capworks/portal/internal/apiclient"
	"codeberg.org/capworks/portal/internal/config"
	"codeberg.org/capworks/portal/internal/logger"
	"codeberg.org/capworks/portal/internal/presenter"
	"codeberg.org/capworks/portal/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// size of the error event buffer between commands and the dispatcher
const errorStreamSize = 32

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadEnvironmentVariables()
			if err != nil {
				return err
			}

			// the TUI owns the terminal, so logs go to a file
			logFile, err := logger.SetOutputFile(cfg.LogFile, cfg.Environment)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer logFile.Close() //nolint:errcheck

			deriver, err := newDeriver(cmd, cfg)
			if err != nil {
				return err
			}

			session := presenter.NewSession()

			app := tui.NewApp(cmd.Context(), tui.Options{
				Client:     apiclient.New(cfg.APIEndpoint, cfg.RequestTimeout, session),
				Session:    session,
				Deriver:    deriver,
				Stream:     presenter.NewErrorStream(errorStreamSize),
				WSEndpoint: cfg.WSEndpoint,
				Env:        cfg.Environment,
			})

			logger.Info("starting portal", "api", cfg.APIEndpoint, "env", cfg.Environment)

			p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running portal: %w", err)
			}

			return nil
		},
	}
}
