package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/omegalab/lessonplan/internal/router"
	"github.com/omegalab/lessonplan/internal/screen"
	"github.com/omegalab/lessonplan/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 300 * time.Millisecond
	taglineAt    = 900 * time.Millisecond
	totalDur     = 1500 * time.Millisecond
)

// Tagline is shown under the banner.
const Tagline = "Planificador de clases con IA"

var cursorFrames = []string{"▍", " "}

type tickMsg time.Time

// WelcomeScreen shows the OMEGA banner and hands over to the form on the
// first key press.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that is replaced by the screen next builds.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	if w.elapsed >= bannerAt {
		sections = append(sections, RenderBanner(width), "")
	}

	if w.elapsed >= taglineAt {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(Tagline)
		sections = append(sections, tagline,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("OMEGA COMPUTER LAB"))
	}

	if w.elapsed >= totalDur {
		cursor := lipgloss.NewStyle().Foreground(theme.Accent).
			Render(cursorFrames[w.tickCount%len(cursorFrames)])
		sections = append(sections, "", theme.Hint.Render("presiona cualquier tecla para comenzar")+cursor)
	}

	if len(sections) == 0 {
		sections = append(sections, "")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
