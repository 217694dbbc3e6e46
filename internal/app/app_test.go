package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omegalab/lessonplan/internal/router"
	"github.com/omegalab/lessonplan/internal/screens/form"
	"github.com/omegalab/lessonplan/internal/screens/welcome"
)

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func TestAppModel_WelcomeHandsOverToForm(t *testing.T) {
	m := newAppModel(Options{Logger: zerolog.Nop(), Status: "mock"})
	_, ok := m.router.Active().(*welcome.WelcomeScreen)
	require.True(t, ok, "starts on the welcome screen")

	m, cmd := update(t, m, tea.KeyPressMsg{Code: 'x', Text: "x"})
	require.NotNil(t, cmd)
	msg := cmd()
	replace, ok := msg.(router.ReplaceScreenMsg)
	require.True(t, ok, "expected ReplaceScreenMsg, got %T", msg)

	m, _ = update(t, m, replace)
	_, ok = m.router.Active().(*form.FormScreen)
	assert.True(t, ok, "form replaces the welcome screen")
	assert.Equal(t, 1, m.router.Depth())
}

func TestAppModel_View(t *testing.T) {
	m := newAppModel(Options{Logger: zerolog.Nop(), Status: "gemini-2.5-flash"})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	plain := ansi.Strip(m.frame())
	assert.Contains(t, plain, "OMEGA Planificador")
	assert.Contains(t, plain, "gemini-2.5-flash")
	assert.Contains(t, plain, "Ctrl+C")
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel(Options{Logger: zerolog.Nop()})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 5})

	plain := ansi.Strip(m.frame())
	assert.False(t, strings.Contains(plain, "OMEGA Planificador"))
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newAppModel(Options{Logger: zerolog.Nop()})
	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
