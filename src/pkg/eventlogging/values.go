package eventlogging

import (
	"fmt"
	"strconv"
)

// Tags are indexed, low-cardinality metadata.
type Tags map[string]string

// Fields are the unindexed payload of an event.
type Fields map[string]FieldValue

type FieldKind int

const (
	StringKind FieldKind = iota
	BoolKind
	IntKind
	FloatKind
)

// FieldValue holds exactly one of a string, bool, int64 or float64.
type FieldValue struct {
	kind FieldKind
	s    string
	b    bool
	i    int64
	f    float64
}

func String(v string) FieldValue {
	return FieldValue{kind: StringKind, s: v}
}

func Bool(v bool) FieldValue {
	return FieldValue{kind: BoolKind, b: v}
}

func Int(v int64) FieldValue {
	return FieldValue{kind: IntKind, i: v}
}

func Float(v float64) FieldValue {
	return FieldValue{kind: FloatKind, f: v}
}

func (v FieldValue) Kind() FieldKind {
	return v.kind
}

// Interface returns the value as the Go type the line protocol encoder
// expects.
func (v FieldValue) Interface() interface{} {
	switch v.kind {
	case BoolKind:
		return v.b
	case IntKind:
		return v.i
	case FloatKind:
		return v.f
	default:
		return v.s
	}
}

func (v FieldValue) StringValue() (string, bool) {
	return v.s, v.kind == StringKind
}

func (v FieldValue) BoolValue() (bool, bool) {
	return v.b, v.kind == BoolKind
}

func (v FieldValue) IntValue() (int64, bool) {
	return v.i, v.kind == IntKind
}

func (v FieldValue) FloatValue() (float64, bool) {
	return v.f, v.kind == FloatKind
}

func (v FieldValue) String() string {
	switch v.kind {
	case BoolKind:
		return strconv.FormatBool(v.b)
	case IntKind:
		return strconv.FormatInt(v.i, 10)
	case FloatKind:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return v.s
	}
}

// Timestamp is either an integer or a numeric string, stored as given.
type Timestamp struct {
	set   bool
	isStr bool
	i     int64
	s     string
}

func IntTimestamp(v int64) Timestamp {
	return Timestamp{set: true, i: v}
}

func StringTimestamp(v string) Timestamp {
	return Timestamp{set: true, isStr: true, s: v}
}

func (t Timestamp) IsSet() bool {
	return t.set
}

func (t Timestamp) IsString() bool {
	return t.isStr
}

// Int64 returns the timestamp as an integer, parsing string timestamps.
func (t Timestamp) Int64() (int64, error) {
	if !t.isStr {
		return t.i, nil
	}

	v, err := strconv.ParseInt(t.s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", t.s)
	}

	return v, nil
}

func (t Timestamp) String() string {
	if t.isStr {
		return t.s
	}
	if !t.set {
		return ""
	}
	return strconv.FormatInt(t.i, 10)
}
