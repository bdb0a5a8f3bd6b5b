package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, want := range []string{slotsTable, llmEventsTable, "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", want,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", want, err)
		}
		if name != want {
			t.Errorf("table name = %q, want %q", name, want)
		}
	}
}

func TestMigrationFromSchemas(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, want := range []string{"llmrequestevents_purpose", "llmrequestevents_timestamp"} {
		var n int
		if err := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='index' AND name=?", want).Scan(&n); err != nil {
			t.Fatal(err)
		}
		if n != 1 {
			t.Errorf("index %s missing", want)
		}
	}

	// Constant defaults come from the schema.
	_, err := db.Exec(`INSERT INTO llm_request_events (sequence, timestamp, provider, model, purpose, success)
		VALUES (1, '2024-05-01T00:00:00.000Z', 'mock', 'm', 'hint', 1)`)
	if err != nil {
		t.Fatalf("insert with defaults: %v", err)
	}
	var tokens int
	var msg string
	if err := db.QueryRow("SELECT input_tokens, error_message FROM llm_request_events WHERE sequence = 1").Scan(&tokens, &msg); err != nil {
		t.Fatal(err)
	}
	if tokens != 0 || msg != "" {
		t.Errorf("defaults = %d %q", tokens, msg)
	}

	// Unique columns are enforced.
	if _, err := db.Exec(`INSERT INTO llm_request_events (sequence, timestamp, provider, model, purpose, success)
		VALUES (1, '2024-05-01T00:00:00.000Z', 'mock', 'm', 'hint', 1)`); err == nil {
		t.Error("duplicate sequence accepted")
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		s.Close()
	}
}

func TestSlotMissingKey(t *testing.T) {
	s := openTestStore(t)
	got, err := s.SlotRepo().Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("got %q, want nil", got)
	}
}

func TestSlotPutGetOverwrite(t *testing.T) {
	s := openTestStore(t)
	repo := s.SlotRepo()
	ctx := context.Background()

	if err := repo.Put(ctx, "studyy.progress.v2", []byte(`{"xp":10}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Put(ctx, "studyy.progress.v2", []byte(`{"xp":25}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := repo.Get(ctx, "studyy.progress.v2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"xp":25}` {
		t.Errorf("value = %s, want {\"xp\":25}", got)
	}

	var rows int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM slots").Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Errorf("rows = %d, want 1", rows)
	}
}

func TestSlotDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.SlotRepo()
	ctx := context.Background()

	if err := repo.Put(ctx, "userPreferences", []byte(`{}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Delete(ctx, "userPreferences"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "userPreferences"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
	got, err := repo.Get(ctx, "userPreferences")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("got %q after delete, want nil", got)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func appendEvents(t *testing.T, repo EventRepo, events ...LLMRequestEventData) {
	t.Helper()
	for i, e := range events {
		if err := repo.AppendLLMRequest(context.Background(), e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
}

func TestLLMEventsQueryNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendEvents(t, repo,
		LLMRequestEventData{Provider: "gemini", Model: "m1", Purpose: "question-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
		LLMRequestEventData{Provider: "gemini", Model: "m1", Purpose: "hint", InputTokens: 20, OutputTokens: 10, LatencyMs: 100, Success: true},
		LLMRequestEventData{Provider: "gemini", Model: "m2", Purpose: "question-gen", Success: false, ErrorMessage: "boom"},
	)

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].Sequence <= events[1].Sequence || events[1].Sequence <= events[2].Sequence {
		t.Errorf("events not newest first: %d, %d, %d", events[0].Sequence, events[1].Sequence, events[2].Sequence)
	}
	if events[0].ErrorMessage != "boom" || events[0].Success {
		t.Errorf("newest event = %+v, want failed with message", events[0].LLMRequestEventData)
	}
	if time.Since(events[0].Timestamp) > time.Minute {
		t.Errorf("timestamp = %v, want recent", events[0].Timestamp)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "question-gen"})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].Model != "m2" {
		t.Errorf("limited = %+v, want single m2 event", limited)
	}

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: events[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 {
		t.Errorf("after filter returned %d events, want 1", len(after))
	}
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendEvents(t, repo, LLMRequestEventData{
		Provider: "mock", Model: "mock-model", Purpose: "hint",
		Success: true, RequestBody: `{"q":1}`, ResponseBody: "try halving",
	})

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	got, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected event")
	}
	if got.RequestBody != `{"q":1}` || got.ResponseBody != "try halving" {
		t.Errorf("bodies = %q / %q", got.RequestBody, got.ResponseBody)
	}

	missing, err := repo.GetLLMEvent(ctx, events[0].ID+100)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("missing event = %+v, want nil", missing)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appendEvents(t, repo,
		LLMRequestEventData{Model: "a", Purpose: "question-gen", InputTokens: 100, OutputTokens: 40, LatencyMs: 300, Success: true},
		LLMRequestEventData{Model: "a", Purpose: "question-gen", InputTokens: 50, OutputTokens: 20, LatencyMs: 100, Success: true},
		LLMRequestEventData{Model: "b", Purpose: "hint", InputTokens: 10, OutputTokens: 5, LatencyMs: 50, Success: true},
	)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("got %d purposes, want 2", len(byPurpose))
	}
	gen := byPurpose[0]
	if gen.Purpose != "question-gen" || gen.Calls != 2 || gen.InputTokens != 150 || gen.OutputTokens != 60 || gen.AvgLatencyMs != 200 {
		t.Errorf("question-gen usage = %+v", gen)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "a" || byModel[0].Calls != 2 {
		t.Errorf("by model = %+v", byModel)
	}
}

func TestTimeColumnScan(t *testing.T) {
	want := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	for _, src := range []any{want.Format(timeLayout), []byte(want.Format(timeLayout)), want.In(time.FixedZone("x", 3600))} {
		var got time.Time
		if err := (timeColumn{&got}).Scan(src); err != nil {
			t.Fatalf("Scan(%T): %v", src, err)
		}
		if !got.Equal(want) || got.Location() != time.UTC {
			t.Errorf("Scan(%T) = %v", src, got)
		}
	}
	var got time.Time
	if err := (timeColumn{&got}).Scan(int64(5)); err == nil {
		t.Error("expected error for integer value")
	}
}
