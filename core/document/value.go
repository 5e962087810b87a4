package document

import (
	"gopkg.in/yaml.v3"
)

// Kind identifies the shape of a Value.
type Kind int

const (
	// NullKind is an explicit null or an empty scalar.
	NullKind Kind = iota
	// ScalarKind is a string, number, boolean or timestamp.
	ScalarKind
	// SequenceKind is an ordered list of values.
	SequenceKind
	// RecordKind is a nested ordered record.
	RecordKind
	// OpaqueKind covers nodes the document model does not interpret (aliases).
	// They are written back exactly as they were read.
	OpaqueKind
)

// Value is one value held by a record entry.
//
// Values decoded from disk keep their source node so that an untouched value is
// written back with its original quoting, style and inner comments.
type Value struct {
	kind   Kind
	scalar any
	items  []Value
	record *Record
	flow   bool
	node   *yaml.Node
}

// Null returns a null value.
func Null() Value {
	return Value{kind: NullKind}
}

// Scalar wraps a Go scalar. A nil argument yields a null value.
func Scalar(v any) Value {
	if v == nil {
		return Null()
	}
	return Value{kind: ScalarKind, scalar: v}
}

// Sequence builds a block-style sequence from items.
func Sequence(items ...Value) Value {
	return Value{kind: SequenceKind, items: items}
}

// FlowSequence builds a sequence rendered inline, e.g. [a, b].
func FlowSequence(items ...Value) Value {
	return Value{kind: SequenceKind, items: items, flow: true}
}

// Strings builds a sequence of string scalars.
func Strings(ss []string) Value {
	items := make([]Value, len(ss))
	for i, s := range ss {
		items[i] = Scalar(s)
	}
	return Sequence(items...)
}

// Nested wraps a record so it can be stored under a key.
func Nested(r *Record) Value {
	if r == nil {
		r = NewRecord()
	}
	return Value{kind: RecordKind, record: r}
}

// Kind reports the value's shape.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == NullKind
}

// Scalar returns the underlying Go scalar, or nil for non-scalars.
func (v Value) Scalar() any {
	if v.kind != ScalarKind {
		return nil
	}
	return v.scalar
}

// Str returns the value as a string if it is a string scalar.
func (v Value) Str() (string, bool) {
	if v.kind != ScalarKind {
		return "", false
	}
	s, ok := v.scalar.(string)
	return s, ok
}

// Items returns the elements of a sequence.
func (v Value) Items() []Value {
	if v.kind != SequenceKind {
		return nil
	}
	return v.items
}

// StringSlice returns the sequence as strings. It fails if the value is not a
// sequence or if any element is not a string scalar.
func (v Value) StringSlice() ([]string, bool) {
	if v.kind != SequenceKind {
		return nil, false
	}
	out := make([]string, 0, len(v.items))
	for _, item := range v.items {
		s, ok := item.Str()
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// Record returns the nested record held by the value.
func (v Value) Record() (*Record, bool) {
	if v.kind != RecordKind || v.record == nil {
		return nil, false
	}
	return v.record, true
}

// Truthy follows the usual scripting notion of truth: null, false, zero, the
// empty string and empty collections are false.
func (v Value) Truthy() bool {
	switch v.kind {
	case NullKind:
		return false
	case ScalarKind:
		switch s := v.scalar.(type) {
		case bool:
			return s
		case string:
			return s != ""
		case int:
			return s != 0
		case int64:
			return s != 0
		case uint64:
			return s != 0
		case float64:
			return s != 0
		default:
			return true
		}
	case SequenceKind:
		return len(v.items) > 0
	case RecordKind:
		return v.record != nil && v.record.Len() > 0
	default:
		return true
	}
}

// Equal compares two values structurally. Styles are ignored; annotations on
// nested records are compared.
func (v Value) Equal(other Value) bool {
	return v.equal(other, true)
}

// SameData compares two values like Equal but ignores annotations at every
// depth.
func (v Value) SameData(other Value) bool {
	return v.equal(other, false)
}

func (v Value) equal(other Value, comments bool) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case ScalarKind:
		return v.scalar == other.scalar
	case SequenceKind:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].equal(other.items[i], comments) {
				return false
			}
		}
		return true
	case RecordKind:
		return v.record.equal(other.record, comments)
	default:
		if v.node == nil || other.node == nil {
			return v.node == other.node
		}
		return v.node.Kind == other.node.Kind && v.node.Value == other.node.Value
	}
}

// Interface converts the value into plain Go values: nil, scalars, []any and
// map[string]any. Key order is lost; use it for diagnostics only.
func (v Value) Interface() any {
	switch v.kind {
	case ScalarKind:
		return v.scalar
	case SequenceKind:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case RecordKind:
		out := make(map[string]any, v.record.Len())
		for _, e := range v.record.entries {
			out[e.Key] = e.Value.Interface()
		}
		return out
	case OpaqueKind:
		if v.node != nil {
			return v.node.Value
		}
	}
	return nil
}

// adoptStyle carries the flow/block choice of a replaced collection over to the
// value replacing it.
func adoptStyle(old, repl Value) Value {
	if repl.node != nil || old.node == nil || old.kind != repl.kind {
		return repl
	}
	if old.kind == SequenceKind || old.kind == RecordKind {
		repl.flow = old.node.Style&yaml.FlowStyle != 0
	}
	return repl
}
