package progress

import (
	"encoding/json"
	"testing"
)

func TestLevelDerivation(t *testing.T) {
	tests := []struct {
		xp          int
		level       int
		xpIntoLevel int
	}{
		{0, 1, 0},
		{99, 1, 99},
		{100, 2, 0},
		{250, 3, 50},
	}

	for _, tt := range tests {
		s := State{XP: tt.xp}
		if got := s.Level(); got != tt.level {
			t.Errorf("Level() at xp %d = %d, want %d", tt.xp, got, tt.level)
		}
		if got := s.XPIntoLevel(); got != tt.xpIntoLevel {
			t.Errorf("XPIntoLevel() at xp %d = %d, want %d", tt.xp, got, tt.xpIntoLevel)
		}
	}
}

func TestMarshalDefaultState(t *testing.T) {
	data, err := json.Marshal(DefaultState())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"xp":0,"streak":0,"lastSolvedDate":null,"completedToday":[],"xpByDay":{},"solvedProblems":[],"attemptedProblems":[]}`
	if string(data) != want {
		t.Errorf("marshal default =\n%s\nwant\n%s", data, want)
	}
}

func TestMarshalNilCollections(t *testing.T) {
	data, err := json.Marshal(State{XP: 5, LastSolvedDate: "2024-01-02"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"xp":5,"streak":0,"lastSolvedDate":"2024-01-02","completedToday":[],"xpByDay":{},"solvedProblems":[],"attemptedProblems":[]}`
	if string(data) != want {
		t.Errorf("marshal =\n%s\nwant\n%s", data, want)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := DefaultState()
	s.SolvedProblems = append(s.SolvedProblems, "a")
	s.XPByDay["2024-01-01"] = 10

	c := s.Clone()
	c.SolvedProblems[0] = "b"
	c.XPByDay["2024-01-01"] = 99

	if s.SolvedProblems[0] != "a" || s.XPByDay["2024-01-01"] != 10 {
		t.Errorf("clone shares storage with original: %+v", s)
	}
}
