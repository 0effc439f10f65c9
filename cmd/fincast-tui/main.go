package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fincast/fincast/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: fincast-tui <document>")
		os.Exit(1)
	}
	documentPath := os.Args[1]

	if _, err := os.Stat(documentPath); os.IsNotExist(err) {
		fmt.Printf("Error: document not found: %s\n", documentPath)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.NewModel(documentPath),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
