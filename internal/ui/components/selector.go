package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/omegalab/lessonplan/internal/ui/theme"
)

// Selector is a single-line choice among fixed options, cycled with the
// left and right keys.
type Selector struct {
	Label    string
	Options  []string
	Selected int
	focused  bool
}

// NewSelector creates a selector with value preselected. An unknown value
// selects the first option.
func NewSelector(label string, options []string, value string) Selector {
	s := Selector{Label: label, Options: options}
	s.SetValue(value)
	return s
}

// Focus focuses the selector.
func (s *Selector) Focus() { s.focused = true }

// Blur removes focus.
func (s *Selector) Blur() { s.focused = false }

// Focused reports whether the selector has focus.
func (s Selector) Focused() bool { return s.focused }

// Update cycles the selection on left/right (h/l) while focused.
func (s Selector) Update(msg tea.Msg) (Selector, tea.Cmd) {
	if !s.focused || len(s.Options) == 0 {
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		s.Selected = (s.Selected - 1 + len(s.Options)) % len(s.Options)
	case "right", "l", "space":
		s.Selected = (s.Selected + 1) % len(s.Options)
	}
	return s, nil
}

// Value returns the selected option.
func (s Selector) Value() string {
	if s.Selected < 0 || s.Selected >= len(s.Options) {
		return ""
	}
	return s.Options[s.Selected]
}

// SetValue selects value if it is one of the options.
func (s *Selector) SetValue(value string) {
	s.Selected = 0
	for i, o := range s.Options {
		if o == value {
			s.Selected = i
			return
		}
	}
}

// View renders the label and the options with the selection highlighted.
func (s Selector) View(width int) string {
	box := theme.Blurred
	if s.focused {
		box = theme.Focused
	}

	parts := make([]string, len(s.Options))
	for i, o := range s.Options {
		if i == s.Selected {
			parts[i] = theme.Selected.Render("● " + o)
		} else {
			parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render("○ " + o)
		}
	}
	arrows := lipgloss.NewStyle().Foreground(theme.TextDim)
	line := arrows.Render("◂ ") + strings.Join(parts, "   ") + arrows.Render(" ▸")

	return theme.Label.Render(s.Label) + "\n" + box.Width(width).Render(line)
}
