package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyy/internal/progress"
	"github.com/abhisek/studyy/internal/router"
	"github.com/abhisek/studyy/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "topics" }
func (s *stubScreen) Title() string                          { return "Topics" }

func newTestWelcome(status progress.LoadStatus) (*WelcomeScreen, *int) {
	callCount := 0
	factory := func() screen.Screen {
		callCount++
		return &stubScreen{}
	}
	return New(status, factory), &callCount
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func TestPhaseTransitions(t *testing.T) {
	w, _ := newTestWelcome(progress.LoadedDefaultMissing)

	if strings.Contains(w.View(80, 24), "press any key") {
		t.Error("prompt should not be visible at start")
	}

	sendTicks(w, 3)
	if w.elapsed != phase1End {
		t.Errorf("expected elapsed %v, got %v", phase1End, w.elapsed)
	}

	sendTicks(w, 6)
	view := w.View(80, 24)
	if !strings.Contains(view, "press any key") {
		t.Error("prompt should be visible after the banner phase")
	}
	if !strings.Contains(view, "earn XP") {
		t.Error("first-run message should be shown")
	}
}

func TestKeypressEmitsReplace(t *testing.T) {
	w, callCount := newTestWelcome(progress.LoadedDefaultMissing)
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' ', Text: " "})
	if cmd == nil {
		t.Fatal("keypress should trigger transition")
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
}

func TestNoAutoTransition(t *testing.T) {
	w, callCount := newTestWelcome(progress.LoadedDefaultMissing)

	sendTicks(w, 30)
	if *callCount != 0 {
		t.Errorf("factory should not be called without keypress, got %d", *callCount)
	}
	if w.elapsed != totalDur {
		t.Errorf("expected elapsed capped at %v, got %v", totalDur, w.elapsed)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, callCount := newTestWelcome(progress.LoadedDefaultMissing)

	w.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b', Text: "b"})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestTicksStopAfterTransition(t *testing.T) {
	w, _ := newTestWelcome(progress.LoadedDefaultMissing)
	w.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})

	if _, cmd := w.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("no further ticks expected once replaced")
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		status progress.LoadStatus
		want   string
	}{
		{progress.LoadedDefaultMissing, "earn XP"},
		{progress.LoadedDefaultCorrupt, "starting fresh"},
		{progress.LoadedDefaultUnavailable, "unavailable"},
	}
	for _, tt := range tests {
		w, _ := newTestWelcome(tt.status)
		if got := w.Message(); !strings.Contains(got, tt.want) {
			t.Errorf("Message() for %v = %q, want it to contain %q", tt.status, got, tt.want)
		}
	}
}

func TestRenderBanner_Compact(t *testing.T) {
	if got := RenderBanner(40); !strings.Contains(got, bannerCompact) {
		t.Errorf("narrow banner should use the compact form, got %q", got)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcome(progress.LoadedDefaultMissing)
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
