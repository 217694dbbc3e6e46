package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/omegalab/lessonplan/internal/router"
	"github.com/omegalab/lessonplan/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "form" }
func (s *stubScreen) Title() string                           { return "Form" }

func newTestWelcome() (*WelcomeScreen, *int) {
	callCount := 0
	next := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(next), &callCount
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func TestPhases(t *testing.T) {
	w, _ := newTestWelcome()

	if strings.Contains(w.View(80, 24), Tagline) {
		t.Error("tagline should not be visible at start")
	}

	sendTicks(w, 9)
	if w.elapsed != 900*time.Millisecond {
		t.Errorf("expected elapsed 900ms, got %v", w.elapsed)
	}
	if !strings.Contains(w.View(80, 24), Tagline) {
		t.Error("tagline should be visible after 900ms")
	}

	sendTicks(w, 20)
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
	if !strings.Contains(w.View(80, 24), "presiona cualquier tecla") {
		t.Error("hint should be visible once the animation finishes")
	}
}

func TestKeypressEmitsReplace(t *testing.T) {
	tests := []struct {
		name  string
		ticks int
	}{
		{"mid animation", 3},
		{"after animation", 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, callCount := newTestWelcome()
			sendTicks(w, tt.ticks)

			_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
			if cmd == nil {
				t.Fatal("expected a command from keypress")
			}
			msg, ok := cmd().(router.ReplaceScreenMsg)
			if !ok {
				t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
			}
			if msg.Screen == nil {
				t.Error("replace screen should not be nil")
			}
			if *callCount != 1 {
				t.Errorf("factory should be called once, got %d", *callCount)
			}
		})
	}
}

func TestTransitionOnce(t *testing.T) {
	w, callCount := newTestWelcome()

	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}

	_, cmd = w.Update(tickMsg(time.Now()))
	if cmd != nil {
		t.Error("ticks should stop after the transition")
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, callCount := newTestWelcome()
	sendTicks(w, 40)
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
}

func TestCompactBanner(t *testing.T) {
	if !strings.Contains(RenderBanner(40), bannerCompact) {
		t.Error("narrow terminals should get the compact banner")
	}
}
