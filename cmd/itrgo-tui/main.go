package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/tui"
)

func main() {
	regulatoryFile := flag.String("regulatory-config", "", "Path to regulatory rules file")
	savePath := flag.String("save", "taxpayer.yaml", "Where ctrl+s writes the form")
	flag.Parse()

	engine := calculation.NewCalculationEngine()
	if *regulatoryFile != "" {
		rules, err := config.NewInputParser().LoadRegulatory(*regulatoryFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		engine = calculation.NewCalculationEngineWithConfig(*rules)
	}

	p := tea.NewProgram(
		tui.NewModel(engine, *savePath),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
