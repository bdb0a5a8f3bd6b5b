// Package answer checks a learner's typed answer against the expected one.
package answer

import "strings"

// Normalize trims surrounding whitespace, lower-cases, and collapses every
// internal run of whitespace to a single space.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

// IsCorrect reports whether the learner's answer matches the expected one
// after normalization. The comparison is otherwise exact: "5.0" does not
// match "5", and an MCQ answer must be the option text, not its index.
func IsCorrect(userAnswer, expected string) bool {
	return Normalize(userAnswer) == Normalize(expected)
}
