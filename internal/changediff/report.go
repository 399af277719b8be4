// Package changediff computes field level differences for the MODIFY records
// of a change stream batch.
package changediff

import (
	"fmt"
	"sort"
)

// MalformedRecordError reports a structurally invalid batch. Index is -1 when the
// batch itself is missing.
type MalformedRecordError struct {
	Index  int
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed batch: %s", e.Reason)
	}
	if e.Field != "" {
		return fmt.Sprintf("malformed record %d: field %q: %s", e.Index, e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed record %d: %s", e.Index, e.Reason)
}

// Report walks the batch in order and returns one entry per changed field of every
// MODIFY record. Other operations produce nothing. A field missing from one image is
// compared as Absent. It stops at the first malformed record and returns no entries.
func Report(batch *ChangeBatch) ([]DiffEntry, error) {
	if batch == nil {
		return nil, &MalformedRecordError{Index: -1, Reason: "nil batch"}
	}

	var entries []DiffEntry
	for i, record := range batch.Records {
		if record.Operation != OperationModify {
			continue
		}
		diff, err := diffRecord(i, record)
		if err != nil {
			return nil, err
		}
		entries = append(entries, diff...)
	}
	return entries, nil
}

func diffRecord(index int, record ChangeRecord) ([]DiffEntry, error) {
	fields := make([]string, 0, len(record.OldImage)+len(record.NewImage))
	for name := range record.OldImage {
		fields = append(fields, name)
	}
	for name := range record.NewImage {
		if _, ok := record.OldImage[name]; !ok {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)

	var entries []DiffEntry
	for _, name := range fields {
		before, ok := record.OldImage[name]
		if !ok {
			before = absent
		}
		after, ok := record.NewImage[name]
		if !ok {
			after = absent
		}
		if !before.Valid() {
			return nil, unsupportedValue(index, name, before)
		}
		if !after.Valid() {
			return nil, unsupportedValue(index, name, after)
		}
		if before.Equal(after) {
			continue
		}
		entries = append(entries, DiffEntry{
			RecordIndex: index,
			Field:       name,
			Old:         before,
			New:         after,
		})
	}
	return entries, nil
}

func unsupportedValue(index int, field string, v Value) error {
	return &MalformedRecordError{
		Index:  index,
		Field:  field,
		Reason: fmt.Sprintf("unsupported value type %q", v.Tag()),
	}
}
