// crud is the terminal client for the remote user directory. It shows
// the directory as a table (or stacked cards on narrow terminals) and
// supports adding, editing, and deleting users through the directory's
// REST API, with form validation and unsaved-change protection.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ItsmeMIGUEL/sample-crud-app/internal/adapter/api"
	"github.com/ItsmeMIGUEL/sample-crud-app/internal/adapter/tui"
	"github.com/ItsmeMIGUEL/sample-crud-app/internal/config"
	"github.com/ItsmeMIGUEL/sample-crud-app/internal/usecase/directory"
	"github.com/ItsmeMIGUEL/sample-crud-app/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var baseURL string
	var logOutput string

	flagSet := pflag.NewFlagSet("crud", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", ".", "directory containing app.env")
	flagSet.StringVar(&baseURL, "base-url", "", "override the directory API base URL")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}

	// Logging to stdout would fight the terminal renderer, so log
	// records go to a file when requested and nowhere otherwise.
	log := zap.NewNop()
	if logOutput != "" {
		log, err = logger.NewWithConfig(logger.Config{
			Level:          cfg.Logger.Level,
			Format:         "json",
			OutputPath:     logOutput,
			ServiceName:    cfg.Logger.ServiceName,
			ServiceVersion: cfg.Logger.ServiceVersion,
		})
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
	}
	defer func() { _ = log.Sync() }()

	client := api.New(api.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout(),
	}, log)

	rec := directory.New(client, log)

	program := tea.NewProgram(tui.NewModel(rec, log), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
