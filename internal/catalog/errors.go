package catalog

import (
	"errors"
	"fmt"
)

const (
	KindTopic   = "topic"
	KindProblem = "problem"
)

// NotFoundError is returned when a topic or problem ID is unknown.
type NotFoundError struct {
	Kind string // KindTopic or KindProblem
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Kind, e.ID)
}

// IsTopicNotFound reports whether err is a missing-topic error.
func IsTopicNotFound(err error) bool {
	return isNotFound(err, KindTopic)
}

// IsProblemNotFound reports whether err is a missing-problem error.
func IsProblemNotFound(err error) bool {
	return isNotFound(err, KindProblem)
}

func isNotFound(err error, kind string) bool {
	var nf *NotFoundError
	return errors.As(err, &nf) && nf.Kind == kind
}
