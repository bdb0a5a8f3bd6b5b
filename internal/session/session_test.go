package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/studyy/internal/catalog"
	"github.com/abhisek/studyy/internal/progress"
)

type memStorage struct {
	state progress.State
	saves int
}

func (m *memStorage) Load(context.Context) (progress.State, progress.LoadResult) {
	return progress.DefaultState(), progress.LoadResult{Status: progress.LoadedDefaultMissing}
}

func (m *memStorage) Save(_ context.Context, s progress.State) error {
	m.state = s
	m.saves++
	return nil
}

func testProblems() []catalog.Problem {
	return []catalog.Problem{
		{ID: "p1", Title: "Add", Statement: "2+2?", Answer: "4", Steps: []string{"Step 1: add"}, Difficulty: catalog.DifficultyEasy},
		{ID: "p2", Title: "Capital", Statement: "Capital of France?", Answer: "Paris", Steps: []string{"Step 1: recall"}, Difficulty: catalog.DifficultyEasy},
		{ID: "p3", Title: "Multiply", Statement: "3*3?", Answer: "9", Difficulty: catalog.DifficultyMedium},
	}
}

func newTestSession(t *testing.T) (*Session, *progress.Tracker) {
	t.Helper()
	clock := func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	tr := progress.Open(context.Background(), &memStorage{}, progress.WithClock(clock))
	s, err := New("math-basics", testProblems(), tr)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, tr
}

func TestNew_Empty(t *testing.T) {
	if _, err := New("t", nil, nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("New(nil) error = %v, want ErrEmpty", err)
	}
}

func TestNavigation(t *testing.T) {
	s, _ := newTestSession(t)

	if s.Len() != 3 || s.Index() != 0 || s.Current().ID != "p1" {
		t.Fatalf("start: len=%d index=%d current=%s", s.Len(), s.Index(), s.Current().ID)
	}
	if s.Prev() {
		t.Error("Prev at first problem should report false")
	}
	if !s.Next() || !s.Next() {
		t.Fatal("Next should advance twice")
	}
	if s.Current().ID != "p3" {
		t.Errorf("current = %s, want p3", s.Current().ID)
	}
	if s.Next() {
		t.Error("Next at last problem should report false")
	}
	if !s.Prev() || s.Current().ID != "p2" {
		t.Errorf("after Prev current = %s, want p2", s.Current().ID)
	}
}

func TestType_MarksAttempted(t *testing.T) {
	ctx := context.Background()
	s, tr := newTestSession(t)

	s.Type(ctx, "   ")
	if tr.IsProblemAttempted("p1") {
		t.Error("blank answer should not mark attempted")
	}
	s.Type(ctx, "5")
	if !tr.IsProblemAttempted("p1") {
		t.Error("typed answer should mark attempted")
	}
	if s.State().Answer != "5" {
		t.Errorf("Answer = %q, want 5", s.State().Answer)
	}
}

func TestSubmit_AwardsOnce(t *testing.T) {
	ctx := context.Background()
	s, tr := newTestSession(t)

	res, err := s.Submit(ctx, "3")
	if err != nil || res.Correct || res.XPAwarded != 0 {
		t.Fatalf("wrong answer: res=%+v err=%v", res, err)
	}
	if tr.State().XP != 0 {
		t.Errorf("XP after wrong answer = %d, want 0", tr.State().XP)
	}

	res, err = s.Submit(ctx, " 4 ")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !res.Correct || res.XPAwarded != CorrectAnswerXP {
		t.Errorf("first correct: %+v", res)
	}

	res, _ = s.Submit(ctx, "4")
	if !res.Correct || res.XPAwarded != 0 || !res.AlreadySolved {
		t.Errorf("second correct: %+v", res)
	}

	st := tr.State()
	if st.XP != CorrectAnswerXP {
		t.Errorf("XP = %d, want %d", st.XP, CorrectAnswerXP)
	}
	if st.Streak != 1 || st.LastSolvedDate != "2024-05-01" {
		t.Errorf("streak=%d last=%q", st.Streak, st.LastSolvedDate)
	}
	if len(st.CompletedToday) != 1 || st.CompletedToday[0] != "math-basics" {
		t.Errorf("CompletedToday = %v", st.CompletedToday)
	}
	if !tr.IsProblemSolved("p1") {
		t.Error("p1 should be solved")
	}
}

func TestSubmit_CaseInsensitive(t *testing.T) {
	s, _ := newTestSession(t)
	s.Next()
	res, err := s.Submit(context.Background(), "  PARIS ")
	if err != nil || !res.Correct {
		t.Errorf("res=%+v err=%v", res, err)
	}
}

func TestSubmit_PreviouslySolvedNotRewarded(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	storage := &memStorage{}
	tr := progress.Open(ctx, storage, progress.WithClock(func() time.Time { return day }))

	first, err := New("math-basics", testProblems(), tr)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := first.Submit(ctx, "4"); err != nil {
		t.Fatalf("Submit day 1: %v", err)
	}
	if st := tr.State(); st.Streak != 1 || st.XP != CorrectAnswerXP {
		t.Fatalf("day 1: streak=%d xp=%d", st.Streak, st.XP)
	}

	day = day.AddDate(0, 0, 1)
	second, err := New("math-basics", testProblems(), tr)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := second.Submit(ctx, "4")
	if err != nil {
		t.Fatalf("Submit day 2: %v", err)
	}
	if !res.AlreadySolved || res.XPAwarded != 0 {
		t.Errorf("res = %+v", res)
	}
	st := tr.State()
	if st.XP != CorrectAnswerXP {
		t.Errorf("XP = %d, want %d", st.XP, CorrectAnswerXP)
	}
	if st.Streak != 2 || st.LastSolvedDate != "2024-05-02" {
		t.Errorf("streak = %d last %q, want 2 on 2024-05-02", st.Streak, st.LastSolvedDate)
	}
	if storage.state.Streak != 2 {
		t.Errorf("saved streak = %d, want 2", storage.state.Streak)
	}
}

func TestRevealSteps_AwardsOncePerProblem(t *testing.T) {
	ctx := context.Background()
	s, tr := newTestSession(t)

	steps, err := s.RevealSteps(ctx)
	if err != nil || len(steps) != 1 {
		t.Fatalf("steps=%v err=%v", steps, err)
	}
	if _, err := s.RevealSteps(ctx); err != nil {
		t.Fatal(err)
	}
	if tr.State().XP != RevealStepsXP {
		t.Errorf("XP = %d, want %d", tr.State().XP, RevealStepsXP)
	}
	if !s.State().StepsShown {
		t.Error("StepsShown should be set")
	}

	s.Next()
	if _, err := s.RevealSteps(ctx); err != nil {
		t.Fatal(err)
	}
	st := tr.State()
	if st.XP != 2*RevealStepsXP {
		t.Errorf("XP = %d, want %d", st.XP, 2*RevealStepsXP)
	}
	if st.Streak != 0 || len(st.CompletedToday) != 0 {
		t.Errorf("reveal must not touch the streak: streak=%d completed=%v", st.Streak, st.CompletedToday)
	}
}

func TestBuildSummary(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t)

	s.Submit(ctx, "1")
	s.Submit(ctx, "4")
	s.RevealSteps(ctx)
	s.Next()
	s.Submit(ctx, "paris")

	sum := BuildSummary(s)
	if sum.Problems != 3 || sum.Submitted != 3 || sum.Correct != 2 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.XPEarned != 2*CorrectAnswerXP+RevealStepsXP {
		t.Errorf("XPEarned = %d", sum.XPEarned)
	}
	if sum.Accuracy < 0.66 || sum.Accuracy > 0.67 {
		t.Errorf("Accuracy = %f", sum.Accuracy)
	}
}
