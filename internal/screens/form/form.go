// Package form is the terminal lesson request form. It submits through the
// shared flow controller and opens the preview once a plan arrives.
package form

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/omegalab/lessonplan/internal/flow"
	"github.com/omegalab/lessonplan/internal/lessonplan"
	"github.com/omegalab/lessonplan/internal/render"
	"github.com/omegalab/lessonplan/internal/router"
	"github.com/omegalab/lessonplan/internal/screen"
	"github.com/omegalab/lessonplan/internal/ui/components"
	"github.com/omegalab/lessonplan/internal/ui/layout"
	"github.com/omegalab/lessonplan/internal/ui/theme"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Focus order: the four text inputs are interleaved with the duration
// selector to match the on-screen layout.
const (
	focusGrade = iota
	focusSubject
	focusTopic
	focusDuration
	focusContext
	focusSubmit
	focusCount
)

// PreviewFactory builds the screen that shows a generated plan.
type PreviewFactory func(plan *lessonplan.Plan) screen.Screen

// FormScreen implements screen.Screen for the lesson request form.
type FormScreen struct {
	gen        flow.Generator
	ctrl       *flow.Controller
	preview    PreviewFactory
	logger     zerolog.Logger
	configured bool

	grade    components.TextInput
	subject  components.TextInput
	topic    components.TextInput
	extra    components.TextInput
	duration components.Selector
	submit   components.Button

	focus int
	frame int
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)

// Options configures a FormScreen.
type Options struct {
	Generator  flow.Generator
	Controller *flow.Controller
	Preview    PreviewFactory
	Logger     zerolog.Logger
	// Configured is false when no credential is available; the form then
	// warns up front instead of waiting for a failed submission.
	Configured bool
}

// New creates a FormScreen with the default duration preselected.
func New(opts Options) *FormScreen {
	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = flow.New()
	}

	s := &FormScreen{
		gen:        opts.Generator,
		ctrl:       ctrl,
		preview:    opts.Preview,
		logger:     opts.Logger.With().Str("component", "form").Logger(),
		configured: opts.Configured,
		grade:      components.NewTextInput(render.FormGrade, render.HintGrade, 120),
		subject:    components.NewTextInput(render.FormSubject, render.HintSubject, 120),
		topic:      components.NewTextInput(render.FormTopic, render.HintTopic, 200),
		extra:      components.NewTextInput(render.FormContext, render.HintContext, 2000),
		duration:   components.NewSelector(render.FormDuration, lessonplan.DurationPresets, lessonplan.DefaultDuration),
		submit:     components.NewButton(render.SubmitLabel, false, nil),
	}
	s.extra.Optional = true
	s.submit.OnPress = s.submitCmd
	return s
}

func (s *FormScreen) Init() tea.Cmd {
	return s.setFocus(focusGrade)
}

func (s *FormScreen) Title() string {
	return "Nuevo plan de clase"
}

func (s *FormScreen) KeyHints() []layout.KeyHint {
	if s.ctrl.State() == flow.Submitting {
		return []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Salir"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Siguiente"},
		{Key: "←→", Description: "Duración"},
		{Key: "Ctrl+S", Description: "Generar"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}

// Request returns the form contents as a normalized request.
func (s *FormScreen) Request() lessonplan.Request {
	return lessonplan.Request{
		Grade:             s.grade.Value(),
		Subject:           s.subject.Value(),
		Topic:             s.topic.Value(),
		Duration:          s.duration.Value(),
		AdditionalContext: s.extra.Value(),
	}.Normalize()
}

func (s *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planReadyMsg:
		return s.handlePlanReady(msg)

	case spinnerTickMsg:
		if s.ctrl.State() != flow.Submitting {
			return s, nil
		}
		s.frame++
		return s, spinnerTick()

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	return s.forward(msg)
}

func (s *FormScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	// Input is frozen while a submission is in flight.
	if s.ctrl.State() == flow.Submitting {
		return s, nil
	}

	switch msg.String() {
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % focusCount)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus - 1 + focusCount) % focusCount)
	case "ctrl+s":
		return s, s.submitCmd()
	case "enter":
		if s.focus == focusSubmit {
			var cmd tea.Cmd
			s.submit, cmd = s.submit.Update(msg)
			return s, cmd
		}
		return s, s.setFocus(s.focus + 1)
	}

	return s.forward(msg)
}

func (s *FormScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.focus {
	case focusGrade:
		s.grade, cmd = s.grade.Update(msg)
	case focusSubject:
		s.subject, cmd = s.subject.Update(msg)
	case focusTopic:
		s.topic, cmd = s.topic.Update(msg)
	case focusDuration:
		s.duration, cmd = s.duration.Update(msg)
	case focusContext:
		s.extra, cmd = s.extra.Update(msg)
	}
	return s, cmd
}

func (s *FormScreen) setFocus(i int) tea.Cmd {
	s.focus = i
	s.grade.Blur()
	s.subject.Blur()
	s.topic.Blur()
	s.extra.Blur()
	s.duration.Blur()
	s.submit.Active = i == focusSubmit

	switch i {
	case focusGrade:
		return s.grade.Focus()
	case focusSubject:
		return s.subject.Focus()
	case focusTopic:
		return s.topic.Focus()
	case focusDuration:
		s.duration.Focus()
	case focusContext:
		return s.extra.Focus()
	}
	return nil
}

// submitCmd validates the form and starts a submission. It is a no-op while
// another submission is in flight.
func (s *FormScreen) submitCmd() tea.Cmd {
	req := s.Request()
	if !s.applyInputErrors(lessonplan.ValidateRequest(req)) {
		return nil
	}

	ticket, ok := s.ctrl.Begin(req)
	if !ok {
		return nil
	}
	s.submit.Disabled = true
	s.frame = 0
	s.logger.Info().Str("request_id", ticket.ID).Str("topic", req.Topic).Msg("plan submitted")

	gen := s.gen
	generate := func() tea.Msg {
		if gen == nil {
			return planReadyMsg{Ticket: ticket, Err: &lessonplan.GenerationError{
				Kind: lessonplan.KindConfiguration, Err: lessonplan.ErrNoProvider,
			}}
		}
		ctx := flow.WithTicket(context.Background(), ticket)
		plan, err := gen.Generate(ctx, ticket.Request)
		return planReadyMsg{Ticket: ticket, Plan: plan, Err: err}
	}
	return tea.Batch(generate, spinnerTick())
}

// applyInputErrors shows per-field messages. It reports whether the form is
// valid.
func (s *FormScreen) applyInputErrors(err error) bool {
	s.grade.SetError("")
	s.subject.SetError("")
	s.topic.SetError("")
	s.extra.SetError("")
	if err == nil {
		return true
	}

	var ierr *lessonplan.InputError
	if !errors.As(err, &ierr) {
		s.logger.Error().Err(err).Msg("request validation failed")
		return false
	}
	s.grade.SetError(ierr.Message("grade"))
	s.subject.SetError(ierr.Message("subject"))
	s.topic.SetError(ierr.Message("topic"))
	s.extra.SetError(ierr.Message("additionalContext"))

	for _, f := range []struct {
		field string
		focus int
	}{{"grade", focusGrade}, {"subject", focusSubject}, {"topic", focusTopic}, {"duration", focusDuration}, {"additionalContext", focusContext}} {
		if ierr.Message(f.field) != "" {
			s.setFocus(f.focus)
			break
		}
	}
	return false
}

func (s *FormScreen) handlePlanReady(msg planReadyMsg) (screen.Screen, tea.Cmd) {
	if !s.ctrl.Complete(msg.Ticket, msg.Plan, msg.Err) {
		return s, nil
	}
	s.submit.Disabled = false

	snap := s.ctrl.Snapshot()
	if snap.State == flow.Failed {
		s.logger.Warn().Err(snap.Err).Str("request_id", msg.Ticket.ID).Msg("plan generation failed")
		return s, nil
	}

	s.logger.Info().Str("request_id", msg.Ticket.ID).Msg("plan ready")
	if s.preview == nil {
		return s, nil
	}
	next := s.preview(snap.Plan)
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *FormScreen) View(width, height int) string {
	formWidth := width - 8
	if formWidth > 90 {
		formWidth = 90
	}
	half := (formWidth - 2) / 2

	var sections []string

	if !s.configured {
		sections = append(sections, theme.ErrorText.Width(formWidth).Render(lessonplan.UserMessage(
			&lessonplan.GenerationError{Kind: lessonplan.KindConfiguration},
		)), "")
	}

	sections = append(sections,
		lipgloss.JoinHorizontal(lipgloss.Top, s.grade.View(half), "  ", s.subject.View(half)),
		"",
		s.topic.View(formWidth),
		"",
		s.duration.View(formWidth),
		"",
		s.extra.View(formWidth),
		"",
	)

	snap := s.ctrl.Snapshot()
	switch snap.State {
	case flow.Submitting:
		spin := lipgloss.NewStyle().Foreground(theme.Accent).Render(spinnerFrames[s.frame%len(spinnerFrames)])
		sections = append(sections, s.submit.View(), "", spin+" "+theme.Hint.Render(render.GeneratingLabel))
	case flow.Failed:
		sections = append(sections, s.submit.View(), "", theme.ErrorText.Width(formWidth).Render("✗ "+snap.ErrorText))
	default:
		sections = append(sections, s.submit.View())
	}

	content := strings.Join(sections, "\n")
	card := lipgloss.NewStyle().Width(formWidth).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().PaddingTop(1).Render(card))
}
