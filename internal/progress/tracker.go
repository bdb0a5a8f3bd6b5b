package progress

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"
)

// ErrInvalidAmount is returned by AwardXP for a non-positive amount.
var ErrInvalidAmount = errors.New("xp amount must be positive")

// Status is a problem's standing for the learner.
type Status string

const (
	StatusTodo      Status = "todo"
	StatusAttempted Status = "attempted"
	StatusSolved    Status = "solved"
)

// AwardOptions qualifies an XP award.
type AwardOptions struct {
	// CompletingTopicID is added to the completed-today list when
	// MarkCompleted is set.
	CompletingTopicID string
	// MarkCompleted applies the daily streak transition.
	MarkCompleted bool
	// ProblemID, if set, is recorded as solved.
	ProblemID string
}

// DayXP is the XP earned on one calendar day.
type DayXP struct {
	Date string
	XP   int
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source used to derive "today".
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// Tracker owns the learner's progress and persists it after every change.
// It is not safe for concurrent use; a process has exactly one writer.
type Tracker struct {
	state  State
	loaded LoadResult
	store  Storage
	now    func() time.Time
	logger *slog.Logger
}

// Open loads the stored progress and returns a Tracker over it. Load
// problems are not errors: the tracker starts from DefaultState and the
// reason is available from LoadResult.
func Open(ctx context.Context, storage Storage, opts ...Option) *Tracker {
	t := &Tracker{
		store:  storage,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.state, t.loaded = storage.Load(ctx)
	t.state.normalize()
	return t
}

// LoadResult reports how the initial state was obtained.
func (t *Tracker) LoadResult() LoadResult {
	return t.loaded
}

// State returns a deep copy of the current progress.
func (t *Tracker) State() State {
	return t.state.Clone()
}

// Today returns the current calendar day key.
func (t *Tracker) Today() string {
	return DayKey(t.now())
}

// AwardXP adds amount XP to the total and to today's tally. With
// MarkCompleted it advances the streak and records the topic as completed
// today; with ProblemID it records the problem as solved.
func (t *Tracker) AwardXP(ctx context.Context, amount int, opts AwardOptions) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	today := t.Today()

	t.state.XP += amount
	t.state.XPByDay[today] += amount

	if opts.MarkCompleted {
		t.complete(today, opts.CompletingTopicID)
	}
	if opts.ProblemID != "" {
		t.state.SolvedProblems, _ = appendUnique(t.state.SolvedProblems, opts.ProblemID)
	}

	t.persist(ctx)
	return nil
}

// CompleteTopic applies the daily streak transition and records topicID
// as completed today without awarding XP. A correct answer to a problem
// solved in an earlier session still counts towards the streak.
func (t *Tracker) CompleteTopic(ctx context.Context, topicID string) {
	t.complete(t.Today(), topicID)
	t.persist(ctx)
}

func (t *Tracker) complete(today, topicID string) {
	t.state.Streak = NextStreak(t.state.LastSolvedDate, t.state.Streak, today)
	t.state.LastSolvedDate = today
	if topicID != "" {
		t.state.CompletedToday, _ = appendUnique(t.state.CompletedToday, topicID)
	}
}

// MarkAttempted records that the learner tried a problem. No XP is awarded.
func (t *Tracker) MarkAttempted(ctx context.Context, problemID string) {
	var added bool
	t.state.AttemptedProblems, added = appendUnique(t.state.AttemptedProblems, problemID)
	if added {
		t.persist(ctx)
	}
}

// MarkSolved records a problem as solved without awarding XP.
func (t *Tracker) MarkSolved(ctx context.Context, problemID string) {
	var added bool
	t.state.SolvedProblems, added = appendUnique(t.state.SolvedProblems, problemID)
	if added {
		t.persist(ctx)
	}
}

func (t *Tracker) IsProblemSolved(id string) bool {
	return slices.Contains(t.state.SolvedProblems, id)
}

func (t *Tracker) IsProblemAttempted(id string) bool {
	return slices.Contains(t.state.AttemptedProblems, id)
}

// ProblemStatus reports solved, attempted or todo. Solved takes precedence.
func (t *Tracker) ProblemStatus(id string) Status {
	switch {
	case t.IsProblemSolved(id):
		return StatusSolved
	case t.IsProblemAttempted(id):
		return StatusAttempted
	default:
		return StatusTodo
	}
}

// ResetToday clears the completed-today list. XP, streak and problem sets
// are untouched.
func (t *Tracker) ResetToday(ctx context.Context) {
	t.state.CompletedToday = []string{}
	t.persist(ctx)
}

// RecentXP returns XP per day for the last days calendar days, oldest
// first, ending today. Days without XP are reported as zero.
func (t *Tracker) RecentXP(days int) []DayXP {
	if days <= 0 {
		return nil
	}
	end := t.now().UTC()
	out := make([]DayXP, days)
	for i := range days {
		day := DayKey(end.AddDate(0, 0, i-days+1))
		out[i] = DayXP{Date: day, XP: t.state.XPByDay[day]}
	}
	return out
}

// persist writes the current state. Failures are logged, not returned.
// When the initial load could not reach storage, the record is read again
// first: nothing is written while storage stays unavailable, and a record
// found then absorbs this session's changes rather than being overwritten.
func (t *Tracker) persist(ctx context.Context) {
	if t.loaded.Status == LoadedDefaultUnavailable && !t.reload(ctx) {
		return
	}
	if err := t.store.Save(ctx, t.state); err != nil {
		t.logger.Warn("failed to persist progress", "err", err)
	}
}

// reload retries the initial load. It reports whether saving may proceed.
func (t *Tracker) reload(ctx context.Context) bool {
	stored, res := t.store.Load(ctx)
	switch res.Status {
	case LoadedDefaultUnavailable:
		t.logger.Warn("progress storage still unavailable, keeping changes in memory", "err", res.Err)
		return false
	case LoadedOK:
		stored.normalize()
		t.state = stored.merge(t.state)
	}
	t.loaded = res
	return true
}
