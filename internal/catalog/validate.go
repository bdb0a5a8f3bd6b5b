package catalog

import (
	"fmt"
	"strings"
)

// validateTopics performs all structural checks on the given topics.
// Returns a combined error describing all problems found, or nil if valid.
func validateTopics(topics []Topic) error {
	var errs []string

	topicIDs := make(map[string]bool, len(topics))
	problemIDs := make(map[string]string)

	for _, t := range topics {
		if t.ID == "" {
			errs = append(errs, fmt.Sprintf("topic %q has an empty ID", t.Title))
		}
		if topicIDs[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", t.ID))
		}
		topicIDs[t.ID] = true

		if !t.Subject.Valid() {
			errs = append(errs, fmt.Sprintf("topic %q has unknown subject %q", t.ID, t.Subject))
		}

		for _, p := range t.Problems {
			if prev, ok := problemIDs[p.ID]; ok {
				errs = append(errs, fmt.Sprintf("duplicate problem ID %q in topics %q and %q", p.ID, prev, t.ID))
			}
			problemIDs[p.ID] = t.ID
			errs = append(errs, validateProblem(p)...)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validateProblem(p Problem) []string {
	var errs []string
	prefix := fmt.Sprintf("problem %q", p.ID)

	if p.ID == "" {
		errs = append(errs, fmt.Sprintf("problem %q has an empty ID", p.Title))
	}
	if strings.TrimSpace(p.Answer) == "" {
		errs = append(errs, prefix+": empty answer")
	}
	if !p.Difficulty.Valid() {
		errs = append(errs, fmt.Sprintf("%s: unknown difficulty %q", prefix, p.Difficulty))
	}
	if p.QuestionType != "" && !p.QuestionType.Valid() {
		errs = append(errs, fmt.Sprintf("%s: unknown question type %q", prefix, p.QuestionType))
	}
	for _, l := range p.EducationLevel {
		if !l.Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown education level %q", prefix, l))
		}
	}
	if p.Acceptance < 0 || p.Acceptance > 100 {
		errs = append(errs, fmt.Sprintf("%s: acceptance must be in [0, 100], got %d", prefix, p.Acceptance))
	}
	if p.QuestionType == TypeMCQ && len(p.Options) > 0 && !optionsContain(p.Options, p.Answer) {
		errs = append(errs, fmt.Sprintf("%s: answer %q is not one of the options", prefix, p.Answer))
	}
	return errs
}

func optionsContain(options []string, answer string) bool {
	for _, o := range options {
		if strings.EqualFold(strings.TrimSpace(o), strings.TrimSpace(answer)) {
			return true
		}
	}
	return false
}
