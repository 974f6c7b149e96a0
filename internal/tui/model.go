package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/output"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Form
	inputs   []textinput.Model
	focus    int
	standard bool
	keys     keyMap

	// Calculation
	calcEngine *calculation.CalculationEngine
	solver     *breakeven.Solver

	input     domain.TaxInput
	result    *domain.TaxResult
	breakEven *breakeven.Result

	// savePath is where ctrl+s writes the form as an input file
	savePath string
	status   string

	// Inline error for the last submit
	err error
}

// NewModel creates a form populated with the sample taxpayer
func NewModel(engine *calculation.CalculationEngine, savePath string) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return Model{
		currentScene: SceneForm,
		inputs:       newInputs(),
		standard:     true,
		keys:         defaultKeyMap(),
		calcEngine:   engine,
		solver:       breakeven.NewDefaultSolver(engine),
		savePath:     savePath,
		width:        80,
		height:       24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// calculateCmd compares both regimes and solves the break-even point off
// the update loop
func calculateCmd(engine *calculation.CalculationEngine, solver *breakeven.Solver, input domain.TaxInput) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.Evaluate(input)
		if err != nil {
			return CalculationCompleteMsg{Input: input, Err: err}
		}

		msg := CalculationCompleteMsg{Input: input, Result: result}
		req := solver.RequestFor(input)
		if be, err := solver.Solve(context.Background(), req); err == nil {
			msg.BreakEven = be
		}
		return msg
	}
}

// saveCmd writes the form as a taxpayer input file
func saveCmd(path string, input domain.TaxInput) tea.Cmd {
	return func() tea.Msg {
		cfg := &domain.Configuration{Taxpayer: input}
		return SavedMsg{Path: path, Err: output.SaveConfiguration(cfg, path)}
	}
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
