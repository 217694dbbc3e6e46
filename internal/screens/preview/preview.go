// Package preview shows a generated lesson plan in the terminal and exports
// it as a printable document.
package preview

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/omegalab/lessonplan/internal/export"
	"github.com/omegalab/lessonplan/internal/lessonplan"
	"github.com/omegalab/lessonplan/internal/render"
	"github.com/omegalab/lessonplan/internal/router"
	"github.com/omegalab/lessonplan/internal/screen"
	"github.com/omegalab/lessonplan/internal/ui/layout"
	"github.com/omegalab/lessonplan/internal/ui/theme"
)

const exportTimeout = 10 * time.Second

// exportDoneMsg reports where an export landed.
type exportDoneMsg struct {
	Path string
	Err  error
}

// PreviewScreen implements screen.Screen for a finished plan.
type PreviewScreen struct {
	plan   *lessonplan.Plan
	sink   export.Sink
	logger zerolog.Logger

	scrollOffset int
	lines        []string
	renderWidth  int

	status    string
	statusErr bool
	exporting bool
}

var _ screen.Screen = (*PreviewScreen)(nil)
var _ screen.KeyHintProvider = (*PreviewScreen)(nil)

// New creates a PreviewScreen for plan. A nil sink disables exporting.
func New(plan *lessonplan.Plan, sink export.Sink, logger zerolog.Logger) *PreviewScreen {
	return &PreviewScreen{
		plan:   plan,
		sink:   sink,
		logger: logger.With().Str("component", "preview").Logger(),
	}
}

func (s *PreviewScreen) Init() tea.Cmd {
	return nil
}

func (s *PreviewScreen) Title() string {
	return "Plan de clase"
}

func (s *PreviewScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Desplazar"},
	}
	if s.sink != nil {
		hints = append(hints,
			layout.KeyHint{Key: "P", Description: render.PrintButtonLabel},
			layout.KeyHint{Key: "M", Description: "Markdown"},
		)
	}
	return append(hints,
		layout.KeyHint{Key: "N", Description: render.NewPlanButtonLabel},
		layout.KeyHint{Key: "Ctrl+C", Description: "Salir"},
	)
}

func (s *PreviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		s.exporting = false
		if msg.Err != nil {
			s.status = "No se pudo exportar el plan: " + msg.Err.Error()
			s.statusErr = true
			return s, nil
		}
		s.status = "Plan guardado en " + msg.Path
		s.statusErr = false
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PreviewScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.scrollOffset > 0 {
			s.scrollOffset--
		}
	case "down", "j":
		s.scrollOffset++
	case "pgup":
		s.scrollOffset -= 10
		if s.scrollOffset < 0 {
			s.scrollOffset = 0
		}
	case "pgdown", "space":
		s.scrollOffset += 10
	case "home", "g":
		s.scrollOffset = 0
	case "p", "e":
		return s, s.exportCmd(export.FormatHTML)
	case "m":
		return s, s.exportCmd(export.FormatMarkdown)
	case "n":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *PreviewScreen) exportCmd(format export.Format) tea.Cmd {
	if s.sink == nil || s.exporting {
		return nil
	}
	s.exporting = true
	s.status = "Exportando..."
	s.statusErr = false

	sink, plan, logger := s.sink, s.plan, s.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()
		path, err := sink.Export(ctx, export.Document{Format: format, Plan: plan})
		if err != nil {
			logger.Error().Err(err).Str("format", string(format)).Msg("export failed")
		} else {
			logger.Info().Str("path", path).Str("format", string(format)).Msg("plan exported")
		}
		return exportDoneMsg{Path: path, Err: err}
	}
}

func (s *PreviewScreen) View(width, height int) string {
	contentWidth := width - 6
	if contentWidth > 110 {
		contentWidth = 110
	}
	if s.lines == nil || s.renderWidth != contentWidth {
		s.lines = strings.Split(render.Terminal(s.plan, contentWidth), "\n")
		s.renderWidth = contentWidth
	}

	statusLine := ""
	if s.status != "" {
		style := lipgloss.NewStyle().Foreground(theme.Success)
		if s.statusErr {
			style = theme.ErrorText
		}
		statusLine = style.Width(contentWidth).Render(s.status)
	}

	visible := height - 1
	if statusLine != "" {
		visible -= lipgloss.Height(statusLine) + 1
	}
	if visible < 1 {
		visible = 1
	}

	maxOffset := len(s.lines) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.scrollOffset > maxOffset {
		s.scrollOffset = maxOffset
	}

	end := s.scrollOffset + visible
	if end > len(s.lines) {
		end = len(s.lines)
	}
	body := strings.Join(s.lines[s.scrollOffset:end], "\n")

	var sections []string
	if statusLine != "" {
		sections = append(sections, statusLine, "")
	}
	sections = append(sections, body)

	return lipgloss.NewStyle().PaddingLeft(3).PaddingTop(1).Render(strings.Join(sections, "\n"))
}
