// Package preferences stores the learner's chosen subject, level, question
// type and difficulty.
package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/studyy/internal/catalog"
	"github.com/abhisek/studyy/internal/store"
)

// StorageKey is the slot holding the serialized preferences.
const StorageKey = "userPreferences"

// ErrInvalid is wrapped by Validate when a field holds an unknown value.
var ErrInvalid = errors.New("invalid preferences")

// Preferences are the learner's defaults for filtering and generation.
// A zero field means "not chosen".
type Preferences struct {
	Subject        catalog.Subject        `json:"subject"`
	EducationLevel catalog.EducationLevel `json:"educationLevel"`
	QuestionType   catalog.QuestionType   `json:"questionType"`
	Difficulty     catalog.Difficulty     `json:"difficulty"`
}

// Complete reports whether every field is set.
func (p Preferences) Complete() bool {
	return p.Subject != "" && p.EducationLevel != "" && p.QuestionType != "" && p.Difficulty != ""
}

// Validate checks that every set field holds a known value.
func (p Preferences) Validate() error {
	var bad []string
	if p.Subject != "" && !p.Subject.Valid() {
		bad = append(bad, fmt.Sprintf("subject %q", p.Subject))
	}
	if p.EducationLevel != "" && !p.EducationLevel.Valid() {
		bad = append(bad, fmt.Sprintf("education level %q", p.EducationLevel))
	}
	if p.QuestionType != "" && !p.QuestionType.Valid() {
		bad = append(bad, fmt.Sprintf("question type %q", p.QuestionType))
	}
	if p.Difficulty != "" && !p.Difficulty.Valid() {
		bad = append(bad, fmt.Sprintf("difficulty %q", p.Difficulty))
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: unknown %s", ErrInvalid, strings.Join(bad, ", "))
	}
	return nil
}

// Filter converts the preferences to a catalog filter.
func (p Preferences) Filter() catalog.Filter {
	return catalog.Filter{
		Subject:        p.Subject,
		EducationLevel: p.EducationLevel,
		QuestionType:   p.QuestionType,
		Difficulty:     p.Difficulty,
	}
}

// Merge returns p with every non-zero field of o applied on top.
func (p Preferences) Merge(o Preferences) Preferences {
	if o.Subject != "" {
		p.Subject = o.Subject
	}
	if o.EducationLevel != "" {
		p.EducationLevel = o.EducationLevel
	}
	if o.QuestionType != "" {
		p.QuestionType = o.QuestionType
	}
	if o.Difficulty != "" {
		p.Difficulty = o.Difficulty
	}
	return p
}

// Store reads and writes Preferences in a slot.
type Store struct {
	slots  store.SlotRepo
	logger *slog.Logger
}

// NewStore creates a Store. A nil logger uses slog.Default().
func NewStore(slots store.SlotRepo, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{slots: slots, logger: logger}
}

// Load returns the stored preferences, or zero preferences when none are
// stored or the record cannot be read.
func (s *Store) Load(ctx context.Context) Preferences {
	raw, err := s.slots.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Warn("preferences unavailable", "key", StorageKey, "err", err)
		return Preferences{}
	}
	if raw == nil {
		return Preferences{}
	}

	var p Preferences
	if err := json.Unmarshal(raw, &p); err != nil {
		s.logger.Warn("stored preferences are corrupt, ignoring", "key", StorageKey, "err", err)
		return Preferences{}
	}
	if err := p.Validate(); err != nil {
		s.logger.Warn("stored preferences are invalid, ignoring", "key", StorageKey, "err", err)
		return Preferences{}
	}
	return p
}

// Save validates p and overwrites the stored record.
func (s *Store) Save(ctx context.Context, p Preferences) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.slots.Put(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
