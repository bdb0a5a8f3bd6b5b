package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyy/internal/router"
	"github.com/abhisek/studyy/internal/session"
)

func testSummary() session.Summary {
	return session.Summary{
		Duration:  5*time.Minute + 7*time.Second,
		Problems:  3,
		Submitted: 4,
		Correct:   3,
		Accuracy:  0.75,
		XPEarned:  35,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(100, 24)
	for _, want := range []string{"Time: 5:07", "Accuracy: 75%", "+35 XP earned"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Errorf("Enter should pop to the topics screen")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("Esc should pop one screen")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	if hints := s.KeyHints(); len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
