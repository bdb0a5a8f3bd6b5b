package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Slot is a durable key-value cell. Each key holds one JSON document
// (the progress record, learner preferences) that is overwritten in place.
type Slot struct {
	ent.Schema
}

func (Slot) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			Unique().
			Immutable().
			NotEmpty().
			Comment("Slot key, e.g. studyy.progress.v2"),
		field.Text("value").
			Comment("Serialized JSON document"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now).
			Comment("Last write time (UTC)"),
	}
}
