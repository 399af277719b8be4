package changediff

import "encoding/json"

// OperationKind is the kind of change a stream record describes.
type OperationKind int

const (
	OperationUnknown OperationKind = iota
	OperationInsert
	OperationModify
	OperationRemove
)

// ParseOperationKind maps a stream event name to its kind. Unrecognized names are OperationUnknown.
func ParseOperationKind(name string) OperationKind {
	switch name {
	case "INSERT":
		return OperationInsert
	case "MODIFY":
		return OperationModify
	case "REMOVE":
		return OperationRemove
	default:
		return OperationUnknown
	}
}

func (k OperationKind) String() string {
	switch k {
	case OperationInsert:
		return "INSERT"
	case OperationModify:
		return "MODIFY"
	case OperationRemove:
		return "REMOVE"
	default:
		return "UNKNOWN"
	}
}

// Image holds the field values of an item at one point in time. A nil Image was not delivered.
type Image map[string]Value

// ChangeRecord is a single insert, modify or remove notification.
type ChangeRecord struct {
	Operation OperationKind
	EventID   string
	Keys      Image
	OldImage  Image
	NewImage  Image
}

// ChangeBatch is an ordered batch of records as delivered by the stream.
type ChangeBatch struct {
	Records []ChangeRecord
}

// DiffEntry is one changed field of a MODIFY record.
type DiffEntry struct {
	RecordIndex int
	Field       string
	Old         Value
	New         Value
}

type diffEntryJSON struct {
	RecordIndex int    `json:"recordIndex"`
	Field       string `json:"field"`
	Old         *Value `json:"old,omitempty"`
	New         *Value `json:"new,omitempty"`
}

func (e DiffEntry) MarshalJSON() ([]byte, error) {
	out := diffEntryJSON{RecordIndex: e.RecordIndex, Field: e.Field}
	if !e.Old.IsAbsent() {
		out.Old = &e.Old
	}
	if !e.New.IsAbsent() {
		out.New = &e.New
	}
	return json.Marshal(out)
}
