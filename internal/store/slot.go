package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sqliteSlotRepo implements SlotRepo on the slots table.
type sqliteSlotRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *sqliteSlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(slotsTable)).
		Where(entsql.EQ("key", key)).
		Query()

	var value string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get slot %q: %w", key, err)
	}
	return []byte(value), nil
}

func (r *sqliteSlotRepo) Put(ctx context.Context, key string, value []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(slotsTable).
		Columns("key", "value", "updated_at").
		Values(key, string(value), r.now().UTC().Format(timeLayout)).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put slot %q: %w", key, err)
	}
	return nil
}

func (r *sqliteSlotRepo) Delete(ctx context.Context, key string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(slotsTable).
		Where(entsql.EQ("key", key)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete slot %q: %w", key, err)
	}
	return nil
}
