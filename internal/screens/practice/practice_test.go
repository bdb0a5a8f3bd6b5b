package practice

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyy/internal/catalog"
	"github.com/abhisek/studyy/internal/llm"
	"github.com/abhisek/studyy/internal/progress"
	"github.com/abhisek/studyy/internal/questions"
	"github.com/abhisek/studyy/internal/router"
	"github.com/abhisek/studyy/internal/screen"
)

type memStorage struct{}

func (memStorage) Load(context.Context) (progress.State, progress.LoadResult) {
	return progress.DefaultState(), progress.LoadResult{Status: progress.LoadedDefaultMissing}
}

func (memStorage) Save(context.Context, progress.State) error { return nil }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testTopic() catalog.Topic {
	return catalog.Topic{
		ID:      "basics",
		Subject: catalog.SubjectMaths,
		Title:   "Basics",
		Problems: []catalog.Problem{
			{ID: "add", Title: "Add", Statement: "What is 2 + 2?", Answer: "4", Steps: []string{"Step 1: 2 + 2 = 4"}, Difficulty: catalog.DifficultyEasy},
			{ID: "capital", Title: "Capital", Statement: "Capital of France?", Answer: "Paris",
				Options: []string{"Rome", "Paris", "Berlin", "Madrid"}, QuestionType: catalog.TypeMCQ, Difficulty: catalog.DifficultyEasy},
		},
	}
}

func newTestScreen(t *testing.T, provider llm.Provider) (*PracticeScreen, *progress.Tracker) {
	t.Helper()
	cat, err := catalog.Builtin()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	clock := func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }
	tr := progress.Open(context.Background(), memStorage{}, progress.WithClock(clock))
	src := questions.NewSource(cat, provider)
	return NewTopic(testTopic(), src, tr), tr
}

func typeText(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(keyPress(r))
	}
	return s
}

func TestPracticeScreen_Title(t *testing.T) {
	s, _ := newTestScreen(t, nil)
	if s.Title() != "Basics" {
		t.Errorf("Title = %q, want Basics", s.Title())
	}
}

func TestPracticeScreen_SubmitCorrect(t *testing.T) {
	s, tr := newTestScreen(t, nil)

	typeText(s, "4")
	if !tr.IsProblemAttempted("add") {
		t.Error("typing should mark the problem attempted")
	}
	s.Update(specialKey(tea.KeyEnter))

	if s.feedback == nil || !s.feedback.Correct {
		t.Fatalf("feedback = %+v, want correct", s.feedback)
	}
	if got := tr.State().XP; got != 10 {
		t.Errorf("XP = %d, want 10", got)
	}
	if !strings.Contains(s.View(100, 30), "Correct! +10 XP") {
		t.Error("view should show the XP award")
	}
}

func TestPracticeScreen_SubmitWrong(t *testing.T) {
	s, tr := newTestScreen(t, nil)
	typeText(s, "5")
	s.Update(specialKey(tea.KeyEnter))

	if s.feedback == nil || s.feedback.Correct {
		t.Fatalf("feedback = %+v, want incorrect", s.feedback)
	}
	if tr.State().XP != 0 {
		t.Errorf("XP = %d, want 0", tr.State().XP)
	}
}

func TestPracticeScreen_CommandMode(t *testing.T) {
	s, tr := newTestScreen(t, nil)

	// While typing, "s" goes to the input.
	s.Update(keyPress('s'))
	if s.sess.State().StepsShown {
		t.Fatal("s while typing should not reveal steps")
	}

	s.Update(specialKey(tea.KeyTab))
	s.Update(keyPress('s'))
	if !s.sess.State().StepsShown {
		t.Fatal("s in command mode should reveal steps")
	}
	if tr.State().XP != 5 {
		t.Errorf("XP = %d, want 5", tr.State().XP)
	}
	if !strings.Contains(s.View(100, 40), "Step 1: 2 + 2 = 4") {
		t.Error("view should show the steps")
	}

	s.Update(keyPress('n'))
	if s.sess.Index() != 1 {
		t.Errorf("Index = %d after n, want 1", s.sess.Index())
	}
}

func TestPracticeScreen_MultipleChoice(t *testing.T) {
	s, tr := newTestScreen(t, nil)
	s.Update(specialKey(tea.KeyTab))
	s.Update(keyPress('n'))
	if !s.isMCQ() {
		t.Fatal("second problem should be MCQ")
	}

	s.Update(keyPress('2'))
	s.Update(specialKey(tea.KeyEnter))
	if s.feedback == nil || !s.feedback.Correct {
		t.Fatalf("feedback = %+v, want correct", s.feedback)
	}
	if !tr.IsProblemSolved("capital") {
		t.Error("capital should be solved")
	}
}

func TestPracticeScreen_HintWithoutProvider(t *testing.T) {
	s, _ := newTestScreen(t, nil)
	s.Update(specialKey(tea.KeyTab))
	_, cmd := s.Update(keyPress('h'))
	if cmd == nil {
		t.Fatal("expected hint command")
	}
	s.Update(cmd())
	if !strings.Contains(s.notice, "not configured") {
		t.Errorf("notice = %q", s.notice)
	}
}

func TestPracticeScreen_Hint(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("Count on your fingers.")})
	s, _ := newTestScreen(t, mock)
	s.Update(specialKey(tea.KeyTab))
	_, cmd := s.Update(keyPress('h'))
	s.Update(cmd())

	if s.sess.State().Hint != "Count on your fingers." {
		t.Errorf("Hint = %q", s.sess.State().Hint)
	}
	if !strings.Contains(s.View(100, 40), "Count on your fingers.") {
		t.Error("view should show the hint")
	}
}

func TestPracticeScreen_Generated(t *testing.T) {
	item := `{"id":"g1","title":"Gen","statement":"What is 3 x 3?","placeholder":"","answer":"9","steps":[],"difficulty":"Easy","tags":[],"acceptance":70,"questionType":"Integer","educationLevel":[],"options":[],"passage":""}`
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"problems":[` + item + `]}`)})
	cat, _ := catalog.Builtin()
	tr := progress.Open(context.Background(), memStorage{})
	req := questions.GenerateRequest{
		Subject: catalog.SubjectMaths, EducationLevel: catalog.LevelClass6to8,
		QuestionType: catalog.TypeInteger, Difficulty: catalog.DifficultyEasy, Count: 1,
	}
	s := NewGenerated(req, questions.NewSource(cat, mock), tr)

	if !strings.Contains(s.View(100, 30), "Generating questions") {
		t.Error("expected loading view")
	}
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected generate command")
	}
	s.Update(cmd())
	if s.sess == nil || s.sess.Current().ID != "g1" {
		t.Fatalf("session not started: err=%q", s.errMsg)
	}
}

func TestPracticeScreen_GenerateFailure(t *testing.T) {
	cat, _ := catalog.Builtin()
	tr := progress.Open(context.Background(), memStorage{})
	req := questions.GenerateRequest{Count: 1}
	s := NewGenerated(req, questions.NewSource(cat, nil), tr)
	s.Update(s.Init()())

	if s.errMsg == "" {
		t.Fatal("expected error message")
	}
	_, cmd := s.Update(keyPress('x'))
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("any key should go back after an error")
	}
}

func TestPracticeScreen_Finish(t *testing.T) {
	s, _ := newTestScreen(t, nil)
	s.Update(specialKey(tea.KeyTab))
	_, cmd := s.Update(keyPress('q'))
	if cmd == nil {
		t.Fatal("expected summary command")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("q should push the summary screen")
	}
}
