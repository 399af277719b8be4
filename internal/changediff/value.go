package changediff

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Kind is the type tag of a Value.
type Kind uint8

const (
	// KindInvalid marks a value whose type tag was not recognized. The zero Value is invalid.
	KindInvalid Kind = iota
	// KindAbsent stands for a field missing from one side of a change.
	KindAbsent
	KindNull
	KindString
	KindNumber
	KindBinary
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "NULL"
	case KindString:
		return "S"
	case KindNumber:
		return "N"
	case KindBinary:
		return "B"
	case KindBool:
		return "BOOL"
	default:
		return "invalid"
	}
}

// Value is a scalar attribute value tagged with its kind.
type Value struct {
	kind Kind
	text string // string value, decimal text of a number, or the source tag of an invalid value
	raw  []byte
	b    bool
}

var absent = Value{kind: KindAbsent}

func Absent() Value { return absent }

func Null() Value { return Value{kind: KindNull} }

func String(s string) Value { return Value{kind: KindString, text: s} }

// Number keeps the decimal text as delivered by the store.
func Number(n string) Value { return Value{kind: KindNumber, text: n} }

func Int(n int64) Value { return Number(strconv.FormatInt(n, 10)) }

func Binary(b []byte) Value { return Value{kind: KindBinary, raw: b} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Unsupported returns an invalid value remembering the type tag it was built from.
func Unsupported(tag string) Value { return Value{kind: KindInvalid, text: tag} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

func (v Value) Valid() bool { return v.kind != KindInvalid }

// Tag is the type tag of the value, or the unrecognized source tag for invalid values.
func (v Value) Tag() string {
	if v.kind == KindInvalid && v.text != "" {
		return v.text
	}
	return v.kind.String()
}

// Equal reports whether two values carry the same kind and the same value.
// Numbers compare numerically so 10 and 10.0 are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.text == o.text
	case KindNumber:
		return numbersEqual(v.text, o.text)
	case KindBinary:
		return bytes.Equal(v.raw, o.raw)
	case KindBool:
		return v.b == o.b
	case KindInvalid:
		return v.text == o.text
	default:
		return true
	}
}

func numbersEqual(a, b string) bool {
	if a == b {
		return true
	}
	x, err := decimal.NewFromString(a)
	if err != nil {
		return false
	}
	y, err := decimal.NewFromString(b)
	if err != nil {
		return false
	}
	return x.Equal(y)
}

// String renders the value for a log line.
func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return "<absent>"
	case KindNull:
		return "null"
	case KindString:
		return strconv.Quote(v.text)
	case KindNumber:
		return v.text
	case KindBinary:
		return base64.StdEncoding.EncodeToString(v.raw)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return fmt.Sprintf("<invalid %s>", v.Tag())
	}
}

// MarshalJSON encodes the value in DynamoDB JSON notation, e.g. {"N":"10"}.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return json.Marshal(map[string]bool{"NULL": true})
	case KindString, KindNumber:
		return json.Marshal(map[string]string{v.kind.String(): v.text})
	case KindBinary:
		return json.Marshal(map[string][]byte{"B": v.raw})
	case KindBool:
		return json.Marshal(map[string]bool{"BOOL": v.b})
	case KindAbsent:
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("cannot marshal %s value", v.Tag())
	}
}
