package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/omegalab/lessonplan/internal/export"
	"github.com/omegalab/lessonplan/internal/flow"
	"github.com/omegalab/lessonplan/internal/lessonplan"
	"github.com/omegalab/lessonplan/internal/router"
	"github.com/omegalab/lessonplan/internal/screen"
	"github.com/omegalab/lessonplan/internal/screens/form"
	"github.com/omegalab/lessonplan/internal/screens/preview"
	"github.com/omegalab/lessonplan/internal/screens/welcome"
	"github.com/omegalab/lessonplan/internal/ui/layout"
)

// Options holds the dependencies shared by every screen.
type Options struct {
	Generator  flow.Generator
	Controller *flow.Controller
	Sink       export.Sink
	Logger     zerolog.Logger
	Configured bool
	// Status is shown on the right side of the header, usually the model ID.
	Status string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

// newAppModel starts on the welcome screen, which hands over to the form.
func newAppModel(opts Options) AppModel {
	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = flow.New()
	}
	newPreview := func(plan *lessonplan.Plan) screen.Screen {
		return preview.New(plan, opts.Sink, opts.Logger)
	}
	newForm := func() screen.Screen {
		return form.New(form.Options{
			Generator:  opts.Generator,
			Controller: ctrl,
			Preview:    newPreview,
			Logger:     opts.Logger,
			Configured: opts.Configured,
		})
	}
	return AppModel{
		router: router.New(welcome.New(newForm)),
		status: opts.Status,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame lays out header, active screen and footer for the current size.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// footerHints prefers the active screen's own hints.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Volver"},
			{Key: "Ctrl+C", Description: "Salir"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continuar"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error al ejecutar el programa:", err)
		return err
	}
	return nil
}
