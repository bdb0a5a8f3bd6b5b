package session

import "time"

// Summary describes a session so far.
type Summary struct {
	Duration  time.Duration
	Problems  int
	Submitted int
	Correct   int
	Accuracy  float64
	XPEarned  int
}

// BuildSummary creates a Summary from the session state.
func BuildSummary(s *Session) Summary {
	var accuracy float64
	if s.submitted > 0 {
		accuracy = float64(s.correct) / float64(s.submitted)
	}
	return Summary{
		Duration:  s.now().Sub(s.started),
		Problems:  len(s.problems),
		Submitted: s.submitted,
		Correct:   s.correct,
		Accuracy:  accuracy,
		XPEarned:  s.xpEarned,
	}
}
