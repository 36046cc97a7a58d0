// Package input provides text input components for the interactive prompts.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/gwcli/internal/adapters/driving/tui/styles"
)

// RedirectInput is a single-line prompt for pasting the URL the browser
// was redirected to. It is a complete tea.Model: Enter submits a non-empty
// value, Esc and Ctrl+C cancel.
type RedirectInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	submitted bool
	cancelled bool
}

// NewRedirectInput creates a focused redirect prompt.
func NewRedirectInput(s *styles.Styles) *RedirectInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "http://localhost:3000/?code=..."
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = 60

	return &RedirectInput{
		textinput: ti,
		styles:    s,
	}
}

// Init starts the cursor blinking.
func (r *RedirectInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (r *RedirectInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			if r.Value() == "" {
				return r, nil
			}
			r.submitted = true
			return r, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			r.cancelled = true
			return r, tea.Quit
		}
	}

	var cmd tea.Cmd
	r.textinput, cmd = r.textinput.Update(msg)
	return r, cmd
}

// View renders the prompt.
func (r *RedirectInput) View() string {
	if r.submitted || r.cancelled {
		return ""
	}
	label := r.styles.Title.Render("Redirect URL: ")
	field := r.styles.InputField.Render(r.textinput.View())
	help := r.styles.Help.Render("enter to submit, esc to cancel")
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, label, field),
		help,
	) + "\n"
}

// Value returns the trimmed input.
func (r *RedirectInput) Value() string {
	return strings.TrimSpace(r.textinput.Value())
}

// SetValue sets the input value.
func (r *RedirectInput) SetValue(value string) {
	r.textinput.SetValue(value)
}

// Submitted reports whether the user confirmed a value.
func (r *RedirectInput) Submitted() bool {
	return r.submitted
}

// Cancelled reports whether the user aborted the prompt.
func (r *RedirectInput) Cancelled() bool {
	return r.cancelled
}
