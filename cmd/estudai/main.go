package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/estudai/internal/cli"
	"github.com/sadopc/estudai/internal/store"
	"github.com/sadopc/estudai/internal/tui"
)

func main() {
	// No args launches the TUI; anything else routes to the CLI.
	if len(os.Args) > 1 {
		if err := cli.Execute(); err != nil {
			os.Exit(1)
		}
		return
	}

	dbPath, err := store.DefaultDBPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	app := tui.NewApp(s)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
