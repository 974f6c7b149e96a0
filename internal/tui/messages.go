package tui

import (
	"github.com/rgehrsitz/itrgo/internal/breakeven"
	"github.com/rgehrsitz/itrgo/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneHelp
)

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// CalculationCompleteMsg carries the comparison for the submitted form
type CalculationCompleteMsg struct {
	Input     domain.TaxInput
	Result    *domain.TaxResult
	BreakEven *breakeven.Result
	Err       error
}

// SavedMsg reports the outcome of writing the form to disk
type SavedMsg struct {
	Path string
	Err  error
}
