package practice

import "github.com/abhisek/studyy/internal/catalog"

// problemsReadyMsg is sent when AI generation finishes.
type problemsReadyMsg struct {
	Problems []catalog.Problem
	Err      error
}

// hintReadyMsg is sent when a hint request finishes.
type hintReadyMsg struct {
	ProblemID string
	Hint      string
	Err       error
}
