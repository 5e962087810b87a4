package document

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

var (
	// ErrAnchorNotFound is returned when an insertion names an anchor key that
	// the record does not contain.
	ErrAnchorNotFound = errors.New("anchor key not found")
	// ErrKeyNotFound is returned when an operation targets a missing key.
	ErrKeyNotFound = errors.New("key not found")
	// ErrDuplicateKey is returned when inserting a key that already exists.
	ErrDuplicateKey = errors.New("key already exists")
)

// Entry is one key of a record together with its value and trailing annotation.
type Entry struct {
	// Key is unique within its record.
	Key string
	// Value is the entry's value.
	Value Value
	// Comment is the end-of-line annotation, without the leading "#".
	Comment string

	keyNode *yaml.Node
	// rawComment is the comment as read, "#" included.
	rawComment string
}

// Record is an ordered set of entries with O(1) lookup by key.
type Record struct {
	entries []*Entry
	index   map[string]int
	node    *yaml.Node
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

// Len returns the number of entries.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Keys returns the keys in document order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	keys := make([]string, len(r.entries))
	for i, e := range r.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns the entries in document order. The slice is a copy; the
// entries are shared.
func (r *Record) Entries() []*Entry {
	if r == nil {
		return nil
	}
	return slices.Clone(r.entries)
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	if r == nil {
		return false
	}
	_, ok := r.index[key]
	return ok
}

// Index returns the position of key, or -1.
func (r *Record) Index(key string) int {
	if r == nil {
		return -1
	}
	if i, ok := r.index[key]; ok {
		return i
	}
	return -1
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	i, ok := r.index[key]
	if !ok {
		return Value{}, false
	}
	return r.entries[i].Value, true
}

// Child returns the nested record stored under key.
func (r *Record) Child(key string) (*Record, bool) {
	v, ok := r.Get(key)
	if !ok {
		return nil, false
	}
	return v.Record()
}

// Comment returns the annotation on key.
func (r *Record) Comment(key string) string {
	if r == nil {
		return ""
	}
	if i, ok := r.index[key]; ok {
		return r.entries[i].Comment
	}
	return ""
}

// Append adds key at the end of the record.
func (r *Record) Append(key string, v Value, comment string) error {
	if r.Has(key) {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	r.entries = append(r.entries, &Entry{Key: key, Value: v, Comment: comment})
	r.index[key] = len(r.entries) - 1
	return nil
}

// InsertAfter places key immediately after anchor. Every other key keeps its
// relative order. A missing anchor is an error; the key is never appended
// somewhere else instead.
func (r *Record) InsertAfter(anchor, key string, v Value, comment string) error {
	i, ok := r.index[anchor]
	if !ok {
		return fmt.Errorf("%w: %q", ErrAnchorNotFound, anchor)
	}
	if r.Has(key) {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	pos := i + 1
	r.entries = slices.Insert(r.entries, pos, &Entry{Key: key, Value: v, Comment: comment})
	r.reindex(pos)
	return nil
}

// Set replaces the value under key, keeping its position and annotation, or
// appends the key when it is absent.
func (r *Record) Set(key string, v Value) {
	i, ok := r.index[key]
	if !ok {
		_ = r.Append(key, v, "")
		return
	}
	e := r.entries[i]
	e.Value = adoptStyle(e.Value, v)
}

// Annotate attaches or replaces the trailing annotation on key. The value is
// not touched. changed is false when the annotation already had this text.
func (r *Record) Annotate(key, text string) (changed bool, err error) {
	i, ok := r.index[key]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	e := r.entries[i]
	if e.Comment == text {
		return false, nil
	}
	e.Comment = text
	return true, nil
}

// Equal compares keys, order, values and annotations.
func (r *Record) Equal(other *Record) bool {
	return r.equal(other, true)
}

// SameData compares keys, order and values, ignoring annotations.
func (r *Record) SameData(other *Record) bool {
	return r.equal(other, false)
}

func (r *Record) equal(other *Record, comments bool) bool {
	if r.Len() != other.Len() {
		return false
	}
	for i := 0; i < r.Len(); i++ {
		e, o := r.entries[i], other.entries[i]
		if e.Key != o.Key || (comments && e.Comment != o.Comment) || !e.Value.equal(o.Value, comments) {
			return false
		}
	}
	return true
}

func (r *Record) reindex(from int) {
	for i := from; i < len(r.entries); i++ {
		r.index[r.entries[i].Key] = i
	}
}

// Document is the top-level record of one timing config file.
type Document struct {
	*Record

	node   *yaml.Node
	source []byte
	path   string
}

// New returns an empty document.
func New() *Document {
	return &Document{Record: NewRecord()}
}

// Path returns the file the document was loaded from, if any.
func (d *Document) Path() string {
	return d.path
}

// Source returns the bytes the document was decoded from, if any.
func (d *Document) Source() []byte {
	return d.source
}
