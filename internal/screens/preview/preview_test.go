package preview

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/omegalab/lessonplan/internal/export"
	"github.com/omegalab/lessonplan/internal/lessonplan"
	"github.com/omegalab/lessonplan/internal/router"
)

type stubSink struct {
	docs []export.Document
	path string
	err  error
}

func (s *stubSink) Export(_ context.Context, doc export.Document) (string, error) {
	s.docs = append(s.docs, doc)
	return s.path, s.err
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testPlan() *lessonplan.Plan {
	p := &lessonplan.Plan{
		Title:              "Fracciones equivalentes",
		Grade:              "4to",
		Subject:            "Matemáticas",
		Duration:           "60 minutos",
		ABCDObjective:      lessonplan.ABCDObjective{Audience: "a", Behavior: "b", Condition: "c", Degree: "d", FullStatement: "abcd"},
		GeneralObjective:   "g",
		SpecificObjectives: []string{"uno", "dos", "tres"},
		Rubric:             []lessonplan.RubricItem{{Criterion: "c", Levels: lessonplan.RubricLevels{Excellent: "e", Good: "g", Fair: "f", Poor: "p"}}},
	}
	for _, ph := range lessonplan.Phases {
		p.Activities = append(p.Activities, lessonplan.Activity{Phase: ph, Description: "actividad", Duration: "20 minutos"})
	}
	return p
}

func TestPreviewScreen_View(t *testing.T) {
	s := New(testPlan(), nil, zerolog.Nop())
	view := s.View(100, 200)
	if view == "" {
		t.Fatal("View returned empty string")
	}
	if !strings.Contains(ansi.Strip(view), "Fracciones equivalentes") {
		t.Error("expected plan title in view")
	}
}

func TestPreviewScreen_Scroll(t *testing.T) {
	s := New(testPlan(), nil, zerolog.Nop())
	s.View(100, 10)

	s.Update(keyPress('k'))
	if s.scrollOffset != 0 {
		t.Errorf("scroll should not go above the top, got %d", s.scrollOffset)
	}

	s.Update(keyPress('j'))
	s.Update(keyPress('j'))
	if s.scrollOffset != 2 {
		t.Errorf("expected offset 2, got %d", s.scrollOffset)
	}

	for i := 0; i < 500; i++ {
		s.Update(keyPress('j'))
	}
	s.View(100, 10)
	if limit := len(s.lines) - 9; s.scrollOffset != limit {
		t.Errorf("expected offset clamped to %d, got %d", limit, s.scrollOffset)
	}

	s.Update(keyPress('g'))
	if s.scrollOffset != 0 {
		t.Errorf("expected offset 0 after home, got %d", s.scrollOffset)
	}
}

func TestPreviewScreen_Export(t *testing.T) {
	tests := []struct {
		key    rune
		format export.Format
	}{
		{'p', export.FormatHTML},
		{'m', export.FormatMarkdown},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			sink := &stubSink{path: "/tmp/plan" + tt.format.Ext()}
			plan := testPlan()
			s := New(plan, sink, zerolog.Nop())

			_, cmd := s.Update(keyPress(tt.key))
			if cmd == nil {
				t.Fatal("expected export command")
			}
			_, again := s.Update(keyPress(tt.key))
			if again != nil {
				t.Error("second export while one is running should be ignored")
			}

			s.Update(cmd())
			if len(sink.docs) != 1 {
				t.Fatalf("expected 1 export, got %d", len(sink.docs))
			}
			if sink.docs[0].Format != tt.format || sink.docs[0].Plan != plan {
				t.Errorf("unexpected document: %+v", sink.docs[0])
			}
			if !strings.Contains(ansi.Strip(s.View(120, 60)), sink.path) {
				t.Error("expected exported path in view")
			}
		})
	}
}

func TestPreviewScreen_ExportError(t *testing.T) {
	sink := &stubSink{err: errors.New("disco lleno")}
	s := New(testPlan(), sink, zerolog.Nop())

	_, cmd := s.Update(keyPress('p'))
	s.Update(cmd())
	if !s.statusErr || !strings.Contains(s.status, "disco lleno") {
		t.Errorf("expected error status, got %q", s.status)
	}
}

func TestPreviewScreen_NoSink(t *testing.T) {
	s := New(testPlan(), nil, zerolog.Nop())
	_, cmd := s.Update(keyPress('p'))
	if cmd != nil {
		t.Error("export without a sink should be a no-op")
	}
	for _, h := range s.KeyHints() {
		if h.Key == "P" {
			t.Error("export hint should be hidden without a sink")
		}
	}
}

func TestPreviewScreen_NewPlan(t *testing.T) {
	s := New(testPlan(), nil, zerolog.Nop())
	_, cmd := s.Update(keyPress('n'))
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}
