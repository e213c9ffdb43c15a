package store

import (
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	documentsTable = "documents"
	snapshotsTable = "snapshots"
	xpEventsTable  = "xp_events"
)

// tables returns the store schema. Migration is append-only, so columns are
// only ever added here.
func tables() []*entschema.Table {
	documents := entschema.NewTable(documentsTable).
		AddPrimary(&entschema.Column{Name: "key", Type: field.TypeString, Size: 255}).
		AddColumn(&entschema.Column{Name: "value", Type: field.TypeBytes}).
		AddColumn(&entschema.Column{Name: "updated_at", Type: field.TypeTime})

	snapshots := entschema.NewTable(snapshotsTable).
		AddPrimary(&entschema.Column{Name: "id", Type: field.TypeInt, Increment: true}).
		AddColumn(&entschema.Column{Name: "sequence", Type: field.TypeInt64}).
		AddColumn(&entschema.Column{Name: "timestamp", Type: field.TypeTime}).
		AddColumn(&entschema.Column{Name: "data", Type: field.TypeBytes}).
		AddIndex("snapshot_timestamp", false, []string{"timestamp"}).
		AddIndex("snapshot_sequence", false, []string{"sequence"})

	xpEvents := entschema.NewTable(xpEventsTable).
		AddPrimary(&entschema.Column{Name: "id", Type: field.TypeInt, Increment: true}).
		AddColumn(&entschema.Column{Name: "sequence", Type: field.TypeInt64, Unique: true}).
		AddColumn(&entschema.Column{Name: "timestamp", Type: field.TypeTime}).
		AddColumn(&entschema.Column{Name: "source", Type: field.TypeString, Size: 64}).
		AddColumn(&entschema.Column{Name: "amount", Type: field.TypeInt}).
		AddColumn(&entschema.Column{Name: "level", Type: field.TypeInt}).
		AddColumn(&entschema.Column{Name: "session_id", Type: field.TypeString, Default: ""}).
		AddIndex("xpevent_timestamp", false, []string{"timestamp"}).
		AddIndex("xpevent_source", false, []string{"source"})

	return []*entschema.Table{documents, snapshots, xpEvents}
}
