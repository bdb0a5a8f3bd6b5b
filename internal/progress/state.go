package progress

import (
	"encoding/json"
	"maps"
	"slices"
)

// XPPerLevel is the amount of XP needed to advance one level.
const XPPerLevel = 100

// State is the learner's persisted progress record.
type State struct {
	XP                int
	Streak            int
	LastSolvedDate    string // YYYY-MM-DD, empty when the learner never completed anything
	CompletedToday    []string
	XPByDay           map[string]int
	SolvedProblems    []string
	AttemptedProblems []string
}

// DefaultState returns the zero-progress record with non-nil collections.
func DefaultState() State {
	return State{
		CompletedToday:    []string{},
		XPByDay:           map[string]int{},
		SolvedProblems:    []string{},
		AttemptedProblems: []string{},
	}
}

// Level is XP/100 + 1, so a new learner starts at level 1.
func (s State) Level() int {
	return s.XP/XPPerLevel + 1
}

// XPIntoLevel is the progress within the current level, 0..99.
func (s State) XPIntoLevel() int {
	return s.XP % XPPerLevel
}

func (s State) SolvedCount() int {
	return len(s.SolvedProblems)
}

func (s State) AttemptedCount() int {
	return len(s.AttemptedProblems)
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := s
	out.CompletedToday = slices.Clone(s.CompletedToday)
	out.XPByDay = maps.Clone(s.XPByDay)
	out.SolvedProblems = slices.Clone(s.SolvedProblems)
	out.AttemptedProblems = slices.Clone(s.AttemptedProblems)
	out.normalize()
	return out
}

// merge folds session, a record that started from DefaultState, into s.
// XP adds up, problem and topic lists are unioned and the streak advances
// as if the session's last completion had happened on top of s.
func (s State) merge(session State) State {
	out := s.Clone()
	out.XP += session.XP
	for day, xp := range session.XPByDay {
		out.XPByDay[day] += xp
	}
	if session.LastSolvedDate != "" {
		out.Streak = NextStreak(out.LastSolvedDate, out.Streak, session.LastSolvedDate)
		out.LastSolvedDate = session.LastSolvedDate
	}
	for _, id := range session.CompletedToday {
		out.CompletedToday, _ = appendUnique(out.CompletedToday, id)
	}
	for _, id := range session.SolvedProblems {
		out.SolvedProblems, _ = appendUnique(out.SolvedProblems, id)
	}
	for _, id := range session.AttemptedProblems {
		out.AttemptedProblems, _ = appendUnique(out.AttemptedProblems, id)
	}
	return out
}

// normalize replaces nil collections with empty ones so the record always
// serializes as arrays and objects, never null.
func (s *State) normalize() {
	if s.CompletedToday == nil {
		s.CompletedToday = []string{}
	}
	if s.XPByDay == nil {
		s.XPByDay = map[string]int{}
	}
	if s.SolvedProblems == nil {
		s.SolvedProblems = []string{}
	}
	if s.AttemptedProblems == nil {
		s.AttemptedProblems = []string{}
	}
}

// stateJSON is the on-disk layout. Field names are part of the storage
// format and must not change.
type stateJSON struct {
	XP                int            `json:"xp"`
	Streak            int            `json:"streak"`
	LastSolvedDate    *string        `json:"lastSolvedDate"`
	CompletedToday    []string       `json:"completedToday"`
	XPByDay           map[string]int `json:"xpByDay"`
	SolvedProblems    []string       `json:"solvedProblems"`
	AttemptedProblems []string       `json:"attemptedProblems"`
}

func (s State) MarshalJSON() ([]byte, error) {
	s = s.Clone()
	out := stateJSON{
		XP:                s.XP,
		Streak:            s.Streak,
		CompletedToday:    s.CompletedToday,
		XPByDay:           s.XPByDay,
		SolvedProblems:    s.SolvedProblems,
		AttemptedProblems: s.AttemptedProblems,
	}
	if s.LastSolvedDate != "" {
		out.LastSolvedDate = &s.LastSolvedDate
	}
	return json.Marshal(out)
}

// appendUnique appends id unless it is already present.
func appendUnique(list []string, id string) ([]string, bool) {
	if slices.Contains(list, id) {
		return list, false
	}
	return append(list, id), true
}
