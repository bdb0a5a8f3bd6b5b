// Package questions supplies practice problems, either from the built-in
// catalog or generated on demand by an LLM provider.
package questions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/studyy/internal/catalog"
	"github.com/abhisek/studyy/internal/llm"
)

// Limits on the number of problems per generation request.
const (
	MinCount = 1
	MaxCount = 20
)

const (
	generateMaxTokens = 8192
	hintMaxTokens     = 512
	generateTemp      = 0.7
	hintTemp          = 0.4
)

// GenerateRequest describes a batch of problems to generate.
type GenerateRequest struct {
	Subject        catalog.Subject
	EducationLevel catalog.EducationLevel
	QuestionType   catalog.QuestionType
	Difficulty     catalog.Difficulty
	Count          int
}

// Validate checks the enum fields. Count is checked separately by Generate.
func (r GenerateRequest) Validate() error {
	var problems []string
	if !r.Subject.Valid() {
		problems = append(problems, fmt.Sprintf("unknown subject %q", r.Subject))
	}
	if !r.EducationLevel.Valid() {
		problems = append(problems, fmt.Sprintf("unknown education level %q", r.EducationLevel))
	}
	if !r.QuestionType.Valid() {
		problems = append(problems, fmt.Sprintf("unknown question type %q", r.QuestionType))
	}
	if !r.Difficulty.Valid() {
		problems = append(problems, fmt.Sprintf("unknown difficulty %q", r.Difficulty))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(problems, "; "))
	}
	return nil
}

// Source combines the static catalog with an optional LLM provider.
type Source struct {
	catalog     *catalog.Catalog
	provider    llm.Provider
	providerErr error
	newID       func() string
	logger      *slog.Logger
}

// Option configures a Source.
type Option func(*Source)

// WithProviderError records why no provider is available. It is reported
// as the cause of ConfigurationError.
func WithProviderError(err error) Option {
	return func(s *Source) { s.providerErr = err }
}

// WithIDFunc overrides the id generator used for problems returned without an id.
func WithIDFunc(fn func() string) Option {
	return func(s *Source) { s.newID = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Source) { s.logger = l }
}

// NewSource creates a Source. provider may be nil, in which case Generate
// and Hint return ConfigurationError.
func NewSource(cat *catalog.Catalog, provider llm.Provider, opts ...Option) *Source {
	s := &Source{
		catalog:  cat,
		provider: provider,
		newID:    uuid.NewString,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "questions")
	return s
}

// Catalog returns the static catalog.
func (s *Source) Catalog() *catalog.Catalog { return s.catalog }

// HasProvider reports whether AI generation is available.
func (s *Source) HasProvider() bool { return s.provider != nil }

// ListStatic returns catalog problems matching f.
func (s *Source) ListStatic(f catalog.Filter) []catalog.Problem {
	return s.catalog.List(f)
}

// Generate asks the provider for req.Count new problems. Returned problems
// carry the requested level, type and difficulty regardless of what the
// model produced.
func (s *Source) Generate(ctx context.Context, req GenerateRequest) ([]catalog.Problem, error) {
	if s.provider == nil {
		return nil, &ConfigurationError{Err: s.providerErr}
	}
	if req.Count < MinCount || req.Count > MaxCount {
		return nil, ErrInvalidCount
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGenerationPrompt(req)},
		},
		Schema:      ProblemSetSchema,
		MaxTokens:   generateMaxTokens,
		Temperature: generateTemp,
	})
	if err != nil {
		return nil, &GenerationError{Op: "generate", Err: err}
	}
	if len(bytes.TrimSpace(resp.Content)) == 0 {
		return nil, &GenerationError{Op: "generate", Err: errors.New("empty response")}
	}

	items, err := parseProblems(resp.Content)
	if err != nil {
		return nil, &GenerationError{Op: "generate", Err: err}
	}

	problems := make([]catalog.Problem, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, raw := range items {
		if err := llm.ValidateJSON(ProblemItemSchema, raw); err != nil {
			return nil, &GenerationError{Op: "generate", Err: fmt.Errorf("problem %d: %w", i, err)}
		}
		var p catalog.Problem
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, &GenerationError{Op: "generate", Err: fmt.Errorf("problem %d: %w", i, err)}
		}
		p = s.normalize(p, req)
		if seen[p.ID] {
			p.ID = "ai-" + s.newID()
		}
		seen[p.ID] = true
		problems = append(problems, p)
	}
	if len(problems) > req.Count {
		problems = problems[:req.Count]
	}

	s.logger.Debug("generated problems",
		"subject", req.Subject,
		"level", req.EducationLevel,
		"requested", req.Count,
		"received", len(items),
	)
	return problems, nil
}

// Hint asks the provider for a short hint on p that does not reveal the answer.
func (s *Source) Hint(ctx context.Context, p catalog.Problem) (string, error) {
	if s.provider == nil {
		return "", &ConfigurationError{Err: s.providerErr}
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeHint)
	resp, err := s.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildHintPrompt(p)},
		},
		MaxTokens:   hintMaxTokens,
		Temperature: hintTemp,
	})
	if err != nil {
		return "", &GenerationError{Op: "hint", Err: err}
	}

	text := resp.Text()
	if text == "" {
		return "", &GenerationError{Op: "hint", Err: errors.New("empty response")}
	}
	return text, nil
}

// parseProblems accepts {"problems": [...]} or a bare array, optionally
// wrapped in a markdown code fence.
func parseProblems(content []byte) ([]json.RawMessage, error) {
	content = bytes.TrimSpace(llm.StripCodeFences(content))
	if len(content) == 0 {
		return nil, errors.New("empty response")
	}

	var items []json.RawMessage
	switch content[0] {
	case '[':
		if err := json.Unmarshal(content, &items); err != nil {
			return nil, fmt.Errorf("parse problem array: %w", err)
		}
	case '{':
		var wrapper struct {
			Problems []json.RawMessage `json:"problems"`
		}
		if err := json.Unmarshal(content, &wrapper); err != nil {
			return nil, fmt.Errorf("parse problem set: %w", err)
		}
		items = wrapper.Problems
	default:
		return nil, fmt.Errorf("response is not JSON: %.40q", content)
	}

	if len(items) == 0 {
		return nil, errors.New("response contained no problems")
	}
	return items, nil
}

func (s *Source) normalize(p catalog.Problem, req GenerateRequest) catalog.Problem {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		p.ID = "ai-" + s.newID()
	}
	p.EducationLevel = []catalog.EducationLevel{req.EducationLevel}
	p.QuestionType = req.QuestionType
	p.Difficulty = req.Difficulty
	if len(p.Options) == 0 {
		p.Options = nil
	}
	if p.Steps == nil {
		p.Steps = []string{}
	}
	return p
}
