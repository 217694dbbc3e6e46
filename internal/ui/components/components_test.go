package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var durations = []string{"45 minutos", "60 minutos", "90 minutos", "120 minutos"}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestSelector_Cycle(t *testing.T) {
	tests := []struct {
		name  string
		start string
		keys  []string
		want  string
	}{
		{"right", "60 minutos", []string{"right"}, "90 minutos"},
		{"left", "60 minutos", []string{"left"}, "45 minutos"},
		{"wraps forward", "120 minutos", []string{"right"}, "45 minutos"},
		{"wraps backward", "45 minutos", []string{"left"}, "120 minutos"},
		{"vim keys", "60 minutos", []string{"l", "l", "h"}, "90 minutos"},
		{"ignores other keys", "60 minutos", []string{"x"}, "60 minutos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector("Duración", durations, tt.start)
			s.Focus()
			for _, k := range tt.keys {
				s, _ = s.Update(key(k))
			}
			assert.Equal(t, tt.want, s.Value())
		})
	}
}

func TestSelector_BlurredIgnoresKeys(t *testing.T) {
	s := NewSelector("Duración", durations, "60 minutos")
	s, _ = s.Update(key("right"))
	assert.Equal(t, "60 minutos", s.Value())
}

func TestSelector_UnknownValue(t *testing.T) {
	s := NewSelector("Duración", durations, "50 minutos")
	assert.Equal(t, "45 minutos", s.Value())

	empty := NewSelector("Duración", nil, "")
	assert.Equal(t, "", empty.Value())
}

func TestSelector_View(t *testing.T) {
	s := NewSelector("Duración", durations, "90 minutos")
	plain := ansi.Strip(s.View(80))
	assert.Contains(t, plain, "Duración")
	assert.Contains(t, plain, "● 90 minutos")
	assert.Contains(t, plain, "○ 45 minutos")
}

func TestTextInput_EditingClearsError(t *testing.T) {
	ti := NewTextInput("Tema de la Clase", "Ej: Fracciones", 200)
	ti.Focus()
	ti.SetError("Este campo es obligatorio.")
	require.Equal(t, "Este campo es obligatorio.", ti.Error())
	assert.Contains(t, ansi.Strip(ti.View(60)), "Este campo es obligatorio.")

	ti, _ = ti.Update(key("a"))
	assert.Equal(t, "a", ti.Value())
	assert.Empty(t, ti.Error())
}

func TestTextInput_CharLimit(t *testing.T) {
	ti := NewTextInput("Grado", "", 3)
	ti.Focus()
	for _, r := range "abcdef" {
		ti, _ = ti.Update(key(string(r)))
	}
	assert.Equal(t, "abc", ti.Value())
}

func TestTextInput_OptionalLabel(t *testing.T) {
	ti := NewTextInput("Contexto Adicional", "", 0)
	ti.Optional = true
	assert.Contains(t, ansi.Strip(ti.View(60)), "Contexto Adicional (Opcional)")
}

func TestButton_Press(t *testing.T) {
	pressed := 0
	onPress := func() tea.Cmd {
		pressed++
		return nil
	}

	tests := []struct {
		name     string
		active   bool
		disabled bool
		want     int
	}{
		{"active", true, false, 1},
		{"inactive", false, false, 0},
		{"disabled", true, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pressed = 0
			b := NewButton("Generar Plan de Clase", tt.active, onPress)
			b.Disabled = tt.disabled
			b.Update(key("enter"))
			assert.Equal(t, tt.want, pressed)
			assert.Contains(t, ansi.Strip(b.View()), "Generar Plan de Clase")
		})
	}
}
