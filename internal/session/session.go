// Package session walks a learner through a topic's problems and applies
// the XP rules for correct answers and revealed solutions.
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/abhisek/studyy/internal/answer"
	"github.com/abhisek/studyy/internal/catalog"
	"github.com/abhisek/studyy/internal/progress"
)

// XP granted by a session.
const (
	CorrectAnswerXP = 10
	RevealStepsXP   = 5
)

// ErrEmpty is returned by New when there are no problems to practise.
var ErrEmpty = errors.New("session has no problems")

// Progress is the part of progress.Tracker a session drives.
type Progress interface {
	AwardXP(ctx context.Context, amount int, opts progress.AwardOptions) error
	CompleteTopic(ctx context.Context, topicID string)
	MarkAttempted(ctx context.Context, problemID string)
	IsProblemSolved(id string) bool
}

// Result is the outcome of Submit.
type Result struct {
	Correct bool
	// XPAwarded is the XP granted by this submission, 0 or CorrectAnswerXP.
	XPAwarded int
	// AlreadySolved is set when a correct answer had already been rewarded.
	AlreadySolved bool
}

// Session is a cursor over a list of problems. It is not safe for
// concurrent use.
type Session struct {
	topicID  string
	problems []catalog.Problem
	states   []ProblemState
	index    int
	progress Progress
	started  time.Time
	now      func() time.Time

	submitted int
	correct   int
	xpEarned  int
}

// New starts a session over problems belonging to topicID. topicID may be
// empty for generated problems.
func New(topicID string, problems []catalog.Problem, p Progress) (*Session, error) {
	if len(problems) == 0 {
		return nil, ErrEmpty
	}
	s := &Session{
		topicID:  topicID,
		problems: problems,
		states:   make([]ProblemState, len(problems)),
		progress: p,
		now:      time.Now,
	}
	s.started = s.now()
	return s, nil
}

// TopicID returns the topic being practised.
func (s *Session) TopicID() string { return s.topicID }

// Len returns the number of problems.
func (s *Session) Len() int { return len(s.problems) }

// Index returns the position of the current problem.
func (s *Session) Index() int { return s.index }

// Current returns the current problem.
func (s *Session) Current() catalog.Problem { return s.problems[s.index] }

// State returns the state of the current problem.
func (s *Session) State() ProblemState { return s.states[s.index] }

// Next moves to the next problem. It reports false at the last problem.
func (s *Session) Next() bool {
	if s.index >= len(s.problems)-1 {
		return false
	}
	s.index++
	return true
}

// Prev moves to the previous problem. It reports false at the first problem.
func (s *Session) Prev() bool {
	if s.index == 0 {
		return false
	}
	s.index--
	return true
}

// Type records the text in the answer box. A non-blank answer marks the
// problem attempted.
func (s *Session) Type(ctx context.Context, text string) {
	s.states[s.index].Answer = text
	if strings.TrimSpace(text) != "" {
		s.progress.MarkAttempted(ctx, s.Current().ID)
	}
}

// Submit evaluates text against the current problem. The first correct
// answer for a problem awards CorrectAnswerXP, marks it solved and counts
// towards the daily streak. Problems already solved in an earlier session
// earn no XP but still count towards the streak.
func (s *Session) Submit(ctx context.Context, text string) (Result, error) {
	s.Type(ctx, text)

	p := s.Current()
	st := &s.states[s.index]
	st.Submitted = true
	s.submitted++

	correct := answer.IsCorrect(text, p.Answer)
	st.LastCorrect = correct
	if !correct {
		return Result{}, nil
	}
	s.correct++

	if st.Awarded {
		return Result{Correct: true, AlreadySolved: true}, nil
	}
	if s.progress.IsProblemSolved(p.ID) {
		s.progress.CompleteTopic(ctx, s.topicID)
		st.Awarded = true
		return Result{Correct: true, AlreadySolved: true}, nil
	}

	err := s.progress.AwardXP(ctx, CorrectAnswerXP, progress.AwardOptions{
		CompletingTopicID: s.topicID,
		MarkCompleted:     true,
		ProblemID:         p.ID,
	})
	if err != nil {
		return Result{Correct: true}, err
	}
	st.Awarded = true
	s.xpEarned += CorrectAnswerXP
	return Result{Correct: true, XPAwarded: CorrectAnswerXP}, nil
}

// RevealSteps returns the worked steps for the current problem. The first
// reveal per problem awards RevealStepsXP.
func (s *Session) RevealSteps(ctx context.Context) ([]string, error) {
	st := &s.states[s.index]
	st.StepsShown = true
	steps := s.Current().Steps
	if st.StepsAwarded {
		return steps, nil
	}
	if err := s.progress.AwardXP(ctx, RevealStepsXP, progress.AwardOptions{}); err != nil {
		return steps, err
	}
	st.StepsAwarded = true
	s.xpEarned += RevealStepsXP
	return steps, nil
}

// SetHint stores a hint for the current problem.
func (s *Session) SetHint(hint string) {
	s.states[s.index].Hint = hint
}
