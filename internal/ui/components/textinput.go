package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/edubridge/edubridge/internal/ui/theme"
)

// Composer wraps bubbles/textinput as the chat message composer.
type Composer struct {
	Model    textinput.Model
	MaxWidth int
	disabled bool
}

// NewComposer creates a new styled chat input.
func NewComposer(placeholder string, maxWidth int) Composer {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return Composer{
		Model:    ti,
		MaxWidth: maxWidth,
	}
}

// Init returns the initial command.
func (c Composer) Init() tea.Cmd {
	return c.Model.Focus()
}

// Update handles messages. Input is dropped while the composer is disabled
// so keystrokes typed during an in-flight reply do not queue up.
func (c Composer) Update(msg tea.Msg) (Composer, tea.Cmd) {
	if c.disabled {
		if _, ok := msg.(tea.KeyMsg); ok {
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.Model, cmd = c.Model.Update(msg)
	return c, cmd
}

// View renders the composer.
func (c Composer) View() string {
	view := c.Model.View()
	if c.disabled {
		view += " " + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("typing…")
	}
	return view
}

// Value returns the current input value.
func (c Composer) Value() string {
	return c.Model.Value()
}

// Reset clears the input.
func (c *Composer) Reset() {
	c.Model.SetValue("")
}

// SetDisabled toggles whether the composer accepts keystrokes.
func (c *Composer) SetDisabled(disabled bool) {
	c.disabled = disabled
}

// Disabled reports whether the composer is currently locked.
func (c Composer) Disabled() bool {
	return c.disabled
}
