package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/omegalab/lessonplan/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label, focus border and an
// inline validation message.
type TextInput struct {
	Model    textinput.Model
	Label    string
	Optional bool
	errMsg   string
}

// NewTextInput creates a blurred, labeled text input. charLimit <= 0 leaves
// the input unbounded.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti, Label: label}
}

// Focus focuses the input and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages. Editing clears the validation message.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	before := t.Model.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if t.Model.Value() != before {
		t.errMsg = ""
	}
	return t, cmd
}

// View renders the label, the boxed input and any validation message.
func (t TextInput) View(width int) string {
	box := theme.Blurred
	if t.Model.Focused() {
		box = theme.Focused
	}
	if t.errMsg != "" {
		box = box.BorderForeground(theme.Error)
	}

	inner := width - box.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}
	t.Model.SetWidth(inner)

	label := t.Label
	if t.Optional {
		label += lipgloss.NewStyle().Foreground(theme.TextDim).Render(" (Opcional)")
	}
	view := theme.Label.Render(label) + "\n" + box.Width(width).Render(t.Model.View())
	if t.errMsg != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("  "+t.errMsg)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// SetError sets or clears ("") the validation message.
func (t *TextInput) SetError(msg string) {
	t.errMsg = msg
}

// Error returns the current validation message.
func (t TextInput) Error() string {
	return t.errMsg
}
