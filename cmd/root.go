package cmd

import (
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/TIrth999999/Cinemas/config"
	"github.com/TIrth999999/Cinemas/service"
	"github.com/TIrth999999/Cinemas/session"
	"github.com/TIrth999999/Cinemas/store"
	"github.com/TIrth999999/Cinemas/tui"
)

var rootCmd = &cobra.Command{
	Use:   "cinemas",
	Short: "Book movie tickets from your terminal",
	Long:  `Browse movies and theaters, pick your seats and pay — all without leaving the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
	SilenceUsage: true,
}

// Execute runs the root command tree.
func Execute() {
	rootCmd.AddCommand(versionCmd, ordersCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildDeps wires config, logging, session persistence and the API client
// together. The session manager's notify hook is left unset; callers attach
// their own sink.
func buildDeps() (tui.Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return tui.Deps{}, fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger(cfg.LogLevel)

	manager := session.NewManager(store.Sessions{}, nil, logger)
	client := service.NewClient(service.Options{
		BaseURL:      cfg.APIBaseURL,
		HTTPClient:   &http.Client{Timeout: cfg.HTTPTimeout},
		Token:        manager.Token,
		Unauthorized: manager.HandleUnauthorized,
		Logger:       logger,
	})

	return tui.Deps{
		Config:  cfg,
		Client:  client,
		Session: manager,
		Logger:  logger,
	}, nil
}

func runTUI() error {
	deps, err := buildDeps()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(deps), tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Session endings (manual logout, token expiry, 401s) reach the TUI as
	// messages so any screen can react.
	deps.Session.SetNotify(func(reason session.LogoutReason) {
		p.Send(tui.SessionEndedMsg{Reason: reason})
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
