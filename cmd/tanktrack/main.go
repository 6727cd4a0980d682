package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhalm/tanktrack/internal/app"
	"github.com/nhalm/tanktrack/internal/model"
	"github.com/nhalm/tanktrack/internal/store"
)

func main() {
	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	s, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	// First run: start with the example collection instead of a blank screen.
	count, err := s.CountItems(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read database: %v\n", err)
		os.Exit(1)
	}
	if count == 0 {
		if err := s.Seed(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed database: %v\n", err)
			os.Exit(1)
		}
	}

	program := tea.NewProgram(app.New(s, *cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running program: %v\n", err)
		os.Exit(1)
	}
}
