package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/abhisek/studyy/internal/store"
)

// StorageKey is the slot holding the serialized progress record.
const StorageKey = "studyy.progress.v2"

// LoadStatus explains where a loaded State came from.
type LoadStatus int

const (
	// LoadedOK means the stored record was read and decoded.
	LoadedOK LoadStatus = iota
	// LoadedDefaultMissing means no record was stored yet.
	LoadedDefaultMissing
	// LoadedDefaultCorrupt means the record was unreadable JSON or had no numeric xp.
	LoadedDefaultCorrupt
	// LoadedDefaultUnavailable means the storage backend returned an error.
	LoadedDefaultUnavailable
)

func (s LoadStatus) String() string {
	switch s {
	case LoadedOK:
		return "ok"
	case LoadedDefaultMissing:
		return "missing"
	case LoadedDefaultCorrupt:
		return "corrupt"
	case LoadedDefaultUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// LoadResult reports the outcome of Load. Err is set for the corrupt and
// unavailable cases.
type LoadResult struct {
	Status LoadStatus
	Err    error
}

// Defaulted reports whether Load fell back to DefaultState.
func (r LoadResult) Defaulted() bool {
	return r.Status != LoadedOK
}

var errMissingXP = errors.New("xp is missing or not a whole number")

// Storage loads and saves the progress record.
type Storage interface {
	Load(ctx context.Context) (State, LoadResult)
	Save(ctx context.Context, s State) error
}

// Repository stores State as JSON in a single slot.
type Repository struct {
	slots  store.SlotRepo
	logger *slog.Logger
}

// NewRepository creates a Repository over slots. A nil logger uses slog.Default().
func NewRepository(slots store.SlotRepo, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{slots: slots, logger: logger}
}

// Load reads the stored record. It never fails: any problem yields
// DefaultState and a LoadResult describing why.
func (r *Repository) Load(ctx context.Context) (State, LoadResult) {
	raw, err := r.slots.Get(ctx, StorageKey)
	if err != nil {
		r.logger.Warn("progress storage unavailable, starting fresh", "key", StorageKey, "err", err)
		return DefaultState(), LoadResult{Status: LoadedDefaultUnavailable, Err: err}
	}
	if raw == nil {
		r.logger.Debug("no stored progress, starting fresh", "key", StorageKey)
		return DefaultState(), LoadResult{Status: LoadedDefaultMissing}
	}

	s, err := decodeState(raw)
	if err != nil {
		r.logger.Warn("stored progress is corrupt, starting fresh", "key", StorageKey, "err", err)
		return DefaultState(), LoadResult{Status: LoadedDefaultCorrupt, Err: err}
	}
	return s, LoadResult{Status: LoadedOK}
}

// Save serializes s and overwrites the slot.
func (r *Repository) Save(ctx context.Context, s State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := r.slots.Put(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Clear deletes the stored record.
func (r *Repository) Clear(ctx context.Context) error {
	if err := r.slots.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

// decodeState parses a stored record. Only xp is strict: it must be a
// non-negative integer that fits in 32 bits. Any other field with an unexpected type falls back
// to its default value.
func decodeState(raw []byte) (State, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return State{}, fmt.Errorf("decode progress: %w", err)
	}

	s := DefaultState()
	xpRaw, ok := fields["xp"]
	if !ok {
		return State{}, errMissingXP
	}
	var xp float64
	if err := json.Unmarshal(xpRaw, &xp); err != nil || xp < 0 || xp > math.MaxInt32 || xp != math.Trunc(xp) {
		return State{}, errMissingXP
	}
	s.XP = int(xp)

	lenient(fields["streak"], &s.Streak)
	lenient(fields["lastSolvedDate"], &s.LastSolvedDate)
	lenient(fields["completedToday"], &s.CompletedToday)
	lenient(fields["xpByDay"], &s.XPByDay)
	lenient(fields["solvedProblems"], &s.SolvedProblems)
	lenient(fields["attemptedProblems"], &s.AttemptedProblems)

	s.CompletedToday = dedupe(s.CompletedToday)
	s.SolvedProblems = dedupe(s.SolvedProblems)
	s.AttemptedProblems = dedupe(s.AttemptedProblems)
	s.normalize()
	return s, nil
}

// lenient decodes raw into dst, leaving dst untouched when raw is absent,
// null, or of the wrong type.
func lenient[T any](raw json.RawMessage, dst *T) {
	if len(raw) == 0 {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	if string(raw) == "null" {
		return
	}
	*dst = v
}

func dedupe(list []string) []string {
	out := make([]string, 0, len(list))
	for _, id := range list {
		out, _ = appendUnique(out, id)
	}
	return out
}
