package changediff_test

import (
	"encoding/json"
	"testing"

	"reindeer-workshop/internal/changediff"
)

func TestValue_String(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		value changediff.Value
		want  string
	}{
		{changediff.String("Rudolph"), `"Rudolph"`},
		{changediff.Int(12), "12"},
		{changediff.Bool(true), "true"},
		{changediff.Null(), "null"},
		{changediff.Absent(), "<absent>"},
		{changediff.Binary([]byte("hi")), "aGk="},
		{changediff.Unsupported("M"), "<invalid M>"},
	}

	for _, tc := range tcs {
		if got := tc.value.String(); got != tc.want {
			t.Errorf("String() = %s, want %s", got, tc.want)
		}
	}
}

func TestValue_Equal(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name string
		a, b changediff.Value
		want bool
	}{
		{"same string", changediff.String("a"), changediff.String("a"), true},
		{"different string", changediff.String("a"), changediff.String("b"), false},
		{"number notation", changediff.Number("1.50"), changediff.Number("1.5"), true},
		{"different numbers", changediff.Number("1"), changediff.Number("2"), false},
		{"bool vs string", changediff.Bool(true), changediff.String("true"), false},
		{"null vs absent", changediff.Null(), changediff.Absent(), false},
		{"null vs null", changediff.Null(), changediff.Null(), true},
		{"binary", changediff.Binary([]byte{1, 2}), changediff.Binary([]byte{1, 2}), true},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.a.Equal(tc.b); got != tc.want {
				t.Errorf("Equal = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestDiffEntry_MarshalJSON(t *testing.T) {
	t.Parallel()

	entry := changediff.DiffEntry{
		RecordIndex: 3,
		Field:       "skill",
		Old:         changediff.String("fast"),
		New:         changediff.Absent(),
	}
	got, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	want := `{"recordIndex":3,"field":"skill","old":{"S":"fast"}}`
	if string(got) != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
}
