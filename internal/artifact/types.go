// Package artifact holds the tracker artifact record handed to a post action:
// the current changeset, the tracker field definitions, and the bindings a
// post action emits back.
package artifact

// Kind is the wire tag of a field value ("type" key).
type Kind string

const (
	KindString      Kind = "string"
	KindText        Kind = "text"
	KindLink        Kind = "art_link"
	KindSelectBox   Kind = "sb"
	KindArtifactID  Kind = "aid"
	KindRadioButton Kind = "rb"
)

// Artifact is one tracker item with its current values and its tracker.
type Artifact struct {
	ID      int64
	Current Changeset
	Tracker Tracker
}

// Changeset is the current snapshot of field values.
type Changeset struct {
	ID     int64
	Values []FieldValue
}

// FieldValue is a closed set of field kinds. Only the types in this package
// implement it; switch on the concrete type and handle every kind.
type FieldValue interface {
	Kind() Kind
	FieldID() int64
	fieldValue()
}

// StringField is an opaque "string" value.
type StringField struct{ ID int64 }

// TextField is an opaque "text" value.
type TextField struct{ ID int64 }

// LinkField is an opaque "art_link" value.
type LinkField struct{ ID int64 }

// SelectBox is an "sb" value: the selected options in selection order and the
// option ids currently bound.
type SelectBox struct {
	ID           int64
	Label        string
	Values       []ListValue
	BindValueIDs []int64
}

// ArtifactIDField is an "aid" value.
type ArtifactIDField struct {
	ID    int64
	Label string
}

// RadioButton is an "rb" value.
type RadioButton struct {
	ID    int64
	Label string
}

func (StringField) Kind() Kind     { return KindString }
func (TextField) Kind() Kind       { return KindText }
func (LinkField) Kind() Kind       { return KindLink }
func (SelectBox) Kind() Kind       { return KindSelectBox }
func (ArtifactIDField) Kind() Kind { return KindArtifactID }
func (RadioButton) Kind() Kind     { return KindRadioButton }

func (f StringField) FieldID() int64     { return f.ID }
func (f TextField) FieldID() int64       { return f.ID }
func (f LinkField) FieldID() int64       { return f.ID }
func (f SelectBox) FieldID() int64       { return f.ID }
func (f ArtifactIDField) FieldID() int64 { return f.ID }
func (f RadioButton) FieldID() int64     { return f.ID }

func (StringField) fieldValue()     {}
func (TextField) fieldValue()       {}
func (LinkField) fieldValue()       {}
func (SelectBox) fieldValue()       {}
func (ArtifactIDField) fieldValue() {}
func (RadioButton) fieldValue()     {}

// ListValue is an option as it appears inside a current select box value:
// either a StaticValue or a UserValue.
type ListValue interface {
	listValue()
}

// StaticValue is a statically labelled option.
type StaticValue struct {
	ID       int64
	Label    string
	Color    *string
	TLPColor *string
}

// UserValue references a user (e.g. a "submitted by" style list).
type UserValue struct {
	ID       *int64
	RealName *string
}

func (StaticValue) listValue() {}
func (UserValue) listValue()   {}

// Tracker is the field schema of a class of artifacts.
type Tracker struct {
	ID     int64
	Fields []TrackerField
}

// TrackerField is a field definition. Values is nil when the field has no
// configured options at all.
type TrackerField struct {
	FieldID int64
	Label   string
	Values  []TrackerFieldValue
}

// TrackerFieldValue is a configured option available for binding.
type TrackerFieldValue struct {
	ID    int64
	Label string
}

// FieldValueBinding sets a field to the given option ids.
type FieldValueBinding struct {
	FieldID      int64   `json:"field_id"`
	BindValueIDs []int64 `json:"bind_value_ids"`
}
