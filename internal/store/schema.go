package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/abhisek/studyy/ent/schema"
)

const (
	slotsTable     = "slots"
	llmEventsTable = "llm_request_events"
)

// tables lists every schema the store creates on Open. The ent schemas in
// ent/schema are the single source of truth for column names and types;
// no generated client is involved.
var tables = []struct {
	name   string
	schema ent.Interface
}{
	{name: slotsTable, schema: schema.Slot{}},
	{name: llmEventsTable, schema: schema.LLMRequestEvent{}},
}

// migrate runs ent's schema migration for every table. Missing tables,
// columns and indexes are created; nothing is dropped.
func migrate(ctx context.Context, db *sql.DB) error {
	m, err := entschema.NewMigrate(entsql.OpenDB(dialect.SQLite, db))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	out := make([]*entschema.Table, 0, len(tables))
	for _, t := range tables {
		out = append(out, migrationTable(t.name, t.schema))
	}
	if err := m.Create(ctx, out...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// migrationTable describes s as a table with an auto-increment id followed
// by mixin fields and the schema's own fields.
func migrationTable(name string, s ent.Interface) *entschema.Table {
	t := entschema.NewTable(name)
	t.AddPrimary(&entschema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	for _, f := range fields {
		d := f.Descriptor()
		c := &entschema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Size:     int64(d.Size),
			Unique:   d.Unique,
			Nullable: d.Optional,
			Comment:  d.Comment,
		}
		// Function defaults such as time.Now are applied by the repositories.
		switch v := d.Default.(type) {
		case string, bool, int, int64:
			c.Default = v
		}
		t.AddColumn(c)
	}
	for _, idx := range indexes {
		d := idx.Descriptor()
		name := d.StorageKey
		if name == "" {
			name = strings.ReplaceAll(t.Name, "_", "") + "_" + strings.Join(d.Fields, "_")
		}
		t.AddIndex(name, d.Unique, d.Fields)
	}
	return t
}
