package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/esnet/internal/calculation"
	"github.com/rgehrsitz/esnet/internal/config"
	"github.com/rgehrsitz/esnet/internal/domain"
	"github.com/rgehrsitz/esnet/internal/tui"
)

func main() {
	params := domain.DefaultParams()
	params.Regimes = domain.AllRegimes()

	// Optional input file with the starting parameters
	if len(os.Args) > 2 {
		fmt.Println("Usage: esnet-tui [input-file]")
		os.Exit(1)
	}
	if len(os.Args) == 2 {
		loaded, err := config.NewInputParser().LoadFromFile(os.Args[1])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		params = *loaded
	}

	model := tui.NewModel(calculation.NewCalculationEngine(), params)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
