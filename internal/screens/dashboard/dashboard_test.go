package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyy/internal/progress"
)

type memStorage struct{}

func (memStorage) Load(context.Context) (progress.State, progress.LoadResult) {
	return progress.DefaultState(), progress.LoadResult{Status: progress.LoadedDefaultMissing}
}

func (memStorage) Save(context.Context, progress.State) error { return nil }

func newTracker(t *testing.T) *progress.Tracker {
	t.Helper()
	clock := func() time.Time { return time.Date(2024, 7, 20, 8, 0, 0, 0, time.UTC) }
	tr := progress.Open(context.Background(), memStorage{}, progress.WithClock(clock))
	err := tr.AwardXP(context.Background(), 130, progress.AwardOptions{
		CompletingTopicID: "math-gcd-lcm",
		MarkCompleted:     true,
		ProblemID:         "gcd-24-36",
	})
	if err != nil {
		t.Fatalf("AwardXP: %v", err)
	}
	return tr
}

func TestDashboard_View(t *testing.T) {
	s := New(newTracker(t))
	view := s.View(100, 40)
	for _, want := range []string{"Level 2", "30/100 XP", "Streak: 1", "Solved: 1", "math-gcd-lcm", "07-20  130"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestDashboard_ResetToday(t *testing.T) {
	tr := newTracker(t)
	s := New(tr)
	s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})

	st := tr.State()
	if len(st.CompletedToday) != 0 {
		t.Errorf("CompletedToday = %v, want empty", st.CompletedToday)
	}
	if st.XP != 130 || st.Streak != 1 {
		t.Errorf("reset touched xp/streak: %+v", st)
	}
}

func TestRenderHistory_AllZero(t *testing.T) {
	days := []progress.DayXP{{Date: "2024-07-19", XP: 0}, {Date: "2024-07-20", XP: 0}}
	out := renderHistory(days, 40)
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected one line per day, got %q", out)
	}
}
