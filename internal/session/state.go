package session

// ProblemState is the per-problem state of a practice session.
type ProblemState struct {
	// Answer is the last text typed or submitted.
	Answer string

	// Submitted is true once any answer was submitted.
	Submitted bool

	// LastCorrect is the outcome of the most recent submission.
	LastCorrect bool

	// Awarded is true once the correct-answer XP was granted.
	Awarded bool

	// StepsShown is true once the worked steps were revealed.
	StepsShown bool

	// StepsAwarded is true once the reveal XP was granted.
	StepsAwarded bool

	// Hint is the last AI hint fetched for the problem, if any.
	Hint string
}
