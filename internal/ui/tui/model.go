package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oshokin/arm-toggle/internal/ui"
)

// Model is the bubbletea model showing a single button.
type Model struct {
	// button is the control activated by key presses.
	button *ui.Button
	// endpoint is shown as a hint of where notifications go.
	endpoint string
	// activations counts handled activations.
	activations int
}

// New creates a model around the given button.
func New(button *ui.Button, endpoint string) *Model {
	return &Model{
		button:   button,
		endpoint: endpoint,
	}
}

// Init implements tea.Model.
//
//nolint:ireturn // Required by tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Enter and space activate the button once per
// key event; q, esc and ctrl+c quit.
//
//nolint:ireturn // Required by tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyEnter, tea.KeySpace:
		m.button.Activate()
		m.activations++

		return m, nil
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyRunes:
		if key.String() == "q" {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	_, _ = fmt.Fprintf(&b, "\n  [ %s ]\n\n", m.button.Text())

	if m.endpoint != "" {
		_, _ = fmt.Fprintf(&b, "  endpoint: %s\n", m.endpoint)
	}

	b.WriteString("  enter/space: toggle • q: quit\n")

	return b.String()
}

// Activations returns the number of handled activations.
func (m *Model) Activations() int {
	return m.activations
}
