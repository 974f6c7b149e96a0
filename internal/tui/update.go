package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case CalculationCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.result = nil
			m.breakEven = nil
			return m, nil
		}
		m.err = nil
		m.input = msg.Input
		m.result = msg.Result
		m.breakEven = msg.BreakEven
		return m, nil

	case SavedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.status = fmt.Sprintf("Saved to %s", msg.Path)
		return m, nil
	}

	return m.updateInputs(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.currentScene == SceneHelp {
		// any key closes help
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.currentScene = m.previousScene
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.previousScene = m.currentScene
		m.currentScene = SceneHelp
		return m, nil

	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus((m.focus + 1) % len(m.inputs))

	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))

	case key.Matches(msg, m.keys.Toggle):
		m.standard = !m.standard
		return m, nil

	case key.Matches(msg, m.keys.Compute):
		m.status = ""
		input, err := buildInput(m.inputs, m.standard)
		if err != nil {
			m.err = err
			m.result = nil
			m.breakEven = nil
			return m, nil
		}
		return m, calculateCmd(m.calcEngine, m.solver, input)

	case key.Matches(msg, m.keys.Save):
		if m.savePath == "" {
			m.err = fmt.Errorf("no save path configured")
			return m, nil
		}
		input, err := buildInput(m.inputs, m.standard)
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, saveCmd(m.savePath, input)
	}

	return m.updateInputs(msg)
}

// setFocus moves the cursor to input i
func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

// updateInputs forwards a message to the focused input
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}
