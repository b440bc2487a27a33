// cmd/propseller/main.go
//
// Entry point for the PropSeller terminal client.
//
// Flow:
// 1. Resolve the user's home directory
// 2. Initialize the .propseller folder (config, logs, state)
// 3. Load configuration and launch the TUI

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/propseller/propseller/internal/config"
	"github.com/propseller/propseller/internal/tui"
)

func main() {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving home directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitAppDir(home); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .propseller directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.New(home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	app, err := tui.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting PropSeller: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
