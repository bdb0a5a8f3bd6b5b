package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Subject is a top-level area of study.
type Subject string

const (
	SubjectMaths   Subject = "Maths"
	SubjectScience Subject = "Science"
	SubjectCoding  Subject = "Coding"
)

// AllSubjects returns all subjects in display order.
func AllSubjects() []Subject {
	return []Subject{SubjectMaths, SubjectScience, SubjectCoding}
}

// Order returns the display position of the subject; unknown subjects sort last.
func (s Subject) Order() int {
	switch s {
	case SubjectMaths:
		return 0
	case SubjectScience:
		return 1
	case SubjectCoding:
		return 2
	default:
		return 999
	}
}

func (s Subject) Valid() bool { return s.Order() < 999 }

// Difficulty grades how hard a problem is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// AllDifficulties returns the difficulties from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

func (d Difficulty) Valid() bool { return slices.Contains(AllDifficulties(), d) }

// EducationLevel is the learner's school year band or degree programme.
type EducationLevel string

const (
	LevelClass6to8   EducationLevel = "Class 6-8"
	LevelClass9to10  EducationLevel = "Class 9-10"
	LevelClass11to12 EducationLevel = "Class 11-12"
	LevelBTech       EducationLevel = "BTECH"
	LevelMCA         EducationLevel = "MCA"
	LevelBCA         EducationLevel = "BCA"
)

// AllEducationLevels returns the levels in display order.
func AllEducationLevels() []EducationLevel {
	return []EducationLevel{
		LevelClass6to8,
		LevelClass9to10,
		LevelClass11to12,
		LevelBTech,
		LevelMCA,
		LevelBCA,
	}
}

func (l EducationLevel) Valid() bool { return slices.Contains(AllEducationLevels(), l) }

// QuestionType is the answer format of a problem. Mixed is only meaningful
// as a filter or generation request and means "any type".
type QuestionType string

const (
	TypeMCQ           QuestionType = "MCQ"
	TypeComprehension QuestionType = "Comprehension"
	TypeInteger       QuestionType = "Integer"
	TypeMixed         QuestionType = "Mixed"
)

// AllQuestionTypes returns the question types in display order.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{TypeMCQ, TypeComprehension, TypeInteger, TypeMixed}
}

func (q QuestionType) Valid() bool { return slices.Contains(AllQuestionTypes(), q) }

// Problem is a single practice question. Problems are immutable values.
type Problem struct {
	ID             string           `json:"id" yaml:"id"`
	Title          string           `json:"title" yaml:"title"`
	Statement      string           `json:"statement" yaml:"statement"`
	Passage        string           `json:"passage,omitempty" yaml:"passage,omitempty"`
	Placeholder    string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Answer         string           `json:"answer" yaml:"answer"`
	Options        []string         `json:"options,omitempty" yaml:"options,omitempty"`
	Steps          []string         `json:"steps" yaml:"steps"`
	Difficulty     Difficulty       `json:"difficulty" yaml:"difficulty"`
	QuestionType   QuestionType     `json:"questionType,omitempty" yaml:"questionType,omitempty"`
	EducationLevel []EducationLevel `json:"educationLevel,omitempty" yaml:"educationLevel,omitempty"`
	Tags           []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
	Acceptance     int              `json:"acceptance,omitempty" yaml:"acceptance,omitempty"`
}

// IsMCQ reports whether the problem is answered by picking one of Options.
func (p Problem) IsMCQ() bool {
	return p.QuestionType == TypeMCQ && len(p.Options) > 0
}

// Topic groups problems under a subject.
type Topic struct {
	ID       string    `json:"id" yaml:"id"`
	Subject  Subject   `json:"subject" yaml:"subject"`
	Title    string    `json:"title" yaml:"title"`
	Problems []Problem `json:"problems" yaml:"problems"`
}

// TopicSummary is a topic without its problems.
type TopicSummary struct {
	ID           string  `json:"id"`
	Subject      Subject `json:"subject"`
	Title        string  `json:"title"`
	ProblemCount int     `json:"problemCount"`
}

// SubjectTopics is one subject's topics, for grouped display.
type SubjectTopics struct {
	Subject Subject
	Topics  []Topic
}

// ParseSubject matches s case-insensitively against the known subjects.
func ParseSubject(s string) (Subject, error) {
	return parseEnum("subject", s, AllSubjects())
}

// ParseDifficulty matches s case-insensitively against the known difficulties.
func ParseDifficulty(s string) (Difficulty, error) {
	return parseEnum("difficulty", s, AllDifficulties())
}

// ParseEducationLevel matches s case-insensitively against the known levels.
func ParseEducationLevel(s string) (EducationLevel, error) {
	return parseEnum("education level", s, AllEducationLevels())
}

// ParseQuestionType matches s case-insensitively against the known types.
func ParseQuestionType(s string) (QuestionType, error) {
	return parseEnum("question type", s, AllQuestionTypes())
}

func parseEnum[T ~string](kind, s string, all []T) (T, error) {
	s = strings.TrimSpace(s)
	for _, v := range all {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown %s %q", kind, s)
}
