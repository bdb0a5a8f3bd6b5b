package catalog

import (
	"slices"
	"strings"
)

// DefaultPerPage is the page size used when none is given.
const DefaultPerPage = 10

// Filter selects problems. Fields combine with AND; a zero field imposes
// no constraint.
type Filter struct {
	Subject        Subject
	Topic          string
	Difficulty     Difficulty
	EducationLevel EducationLevel
	QuestionType   QuestionType
	// Query is a case-insensitive substring matched against the problem
	// title, its topic title and its tags.
	Query string
}

// matches reports whether problem p in topic t satisfies the filter.
func (f Filter) matches(t Topic, p Problem) bool {
	if f.Subject != "" && t.Subject != f.Subject {
		return false
	}
	if f.Topic != "" && t.ID != f.Topic {
		return false
	}
	if f.Difficulty != "" && p.Difficulty != f.Difficulty {
		return false
	}
	// Problems without education levels are suitable for everyone.
	if f.EducationLevel != "" && len(p.EducationLevel) > 0 && !slices.Contains(p.EducationLevel, f.EducationLevel) {
		return false
	}
	if f.QuestionType != "" && f.QuestionType != TypeMixed && p.QuestionType != f.QuestionType {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" && !matchesQuery(q, t, p) {
		return false
	}
	return true
}

func matchesQuery(q string, t Topic, p Problem) bool {
	if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// List returns the problems matching f in catalog order.
func (c *Catalog) List(f Filter) []Problem {
	var out []Problem
	for _, t := range c.topics {
		for _, p := range t.Problems {
			if f.matches(t, p) {
				out = append(out, cloneProblem(p))
			}
		}
	}
	return out
}

// Page is one page of a paginated list.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices items into pages of perPage (DefaultPerPage when
// perPage <= 0) and returns page number page, 1-based. Out of range page
// numbers are clamped to the first or last page.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	total := len(items)
	totalPages := max(1, (total+perPage-1)/perPage)
	page = min(max(page, 1), totalPages)

	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)

	return Page[T]{
		Items:      append([]T{}, items[start:end]...),
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}
}
