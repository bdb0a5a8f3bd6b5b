// Package catalog holds the built-in question bank: topics grouped by
// subject, each with a fixed list of practice problems.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed topics.yaml
var builtinYAML []byte

// problemRef locates a problem inside the topic list.
type problemRef struct {
	topic   int
	problem int
}

// Catalog is an immutable, indexed set of topics. It is safe for
// concurrent readers.
type Catalog struct {
	topics    []Topic
	byTopic   map[string]int
	byProblem map[string]problemRef
}

var builtin = sync.OnceValues(func() (*Catalog, error) {
	return Load(builtinYAML)
})

// Builtin returns the catalog embedded in the binary.
func Builtin() (*Catalog, error) {
	return builtin()
}

// Load parses and validates a YAML catalog document.
func Load(data []byte) (*Catalog, error) {
	var doc struct {
		Topics []Topic `yaml:"topics"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(doc.Topics)
}

// New builds a catalog from topics after validating them.
func New(topics []Topic) (*Catalog, error) {
	if err := validateTopics(topics); err != nil {
		return nil, err
	}

	c := &Catalog{
		topics:    cloneTopics(topics),
		byTopic:   make(map[string]int, len(topics)),
		byProblem: make(map[string]problemRef),
	}
	for ti, t := range c.topics {
		c.byTopic[t.ID] = ti
		for pi, p := range t.Problems {
			c.byProblem[p.ID] = problemRef{topic: ti, problem: pi}
		}
	}
	return c, nil
}

// Topics returns all topics in catalog order.
func (c *Catalog) Topics() []Topic {
	return cloneTopics(c.topics)
}

// Topic returns a topic by ID.
func (c *Catalog) Topic(id string) (Topic, error) {
	i, ok := c.byTopic[id]
	if !ok {
		return Topic{}, &NotFoundError{Kind: KindTopic, ID: id}
	}
	return cloneTopic(c.topics[i]), nil
}

// Problem returns a problem and the ID of the topic that contains it.
func (c *Catalog) Problem(id string) (Problem, string, error) {
	ref, ok := c.byProblem[id]
	if !ok {
		return Problem{}, "", &NotFoundError{Kind: KindProblem, ID: id}
	}
	t := c.topics[ref.topic]
	return cloneProblem(t.Problems[ref.problem]), t.ID, nil
}

// Summaries returns every topic with its problem count.
func (c *Catalog) Summaries() []TopicSummary {
	out := make([]TopicSummary, len(c.topics))
	for i, t := range c.topics {
		out[i] = TopicSummary{
			ID:           t.ID,
			Subject:      t.Subject,
			Title:        t.Title,
			ProblemCount: len(t.Problems),
		}
	}
	return out
}

// TotalProblems counts problems across all topics.
func (c *Catalog) TotalProblems() int {
	return len(c.byProblem)
}

// BySubject groups topics by subject in subject display order. Subjects
// without topics are omitted.
func (c *Catalog) BySubject() []SubjectTopics {
	groups := make(map[Subject][]Topic)
	for _, t := range c.topics {
		groups[t.Subject] = append(groups[t.Subject], cloneTopic(t))
	}

	subjects := make([]Subject, 0, len(groups))
	for s := range groups {
		subjects = append(subjects, s)
	}
	sort.Slice(subjects, func(i, j int) bool {
		return subjects[i].Order() < subjects[j].Order()
	})

	out := make([]SubjectTopics, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, SubjectTopics{Subject: s, Topics: groups[s]})
	}
	return out
}

// ByDifficulty returns every problem of difficulty d, or all problems when
// d is empty.
func (c *Catalog) ByDifficulty(d Difficulty) []Problem {
	return c.List(Filter{Difficulty: d})
}

func cloneTopics(topics []Topic) []Topic {
	out := make([]Topic, len(topics))
	for i, t := range topics {
		out[i] = cloneTopic(t)
	}
	return out
}

func cloneTopic(t Topic) Topic {
	problems := make([]Problem, len(t.Problems))
	for i, p := range t.Problems {
		problems[i] = cloneProblem(p)
	}
	t.Problems = problems
	return t
}

func cloneProblem(p Problem) Problem {
	p.Options = slices.Clone(p.Options)
	p.Steps = slices.Clone(p.Steps)
	p.EducationLevel = slices.Clone(p.EducationLevel)
	p.Tags = slices.Clone(p.Tags)
	return p
}
