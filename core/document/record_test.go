package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord(t *testing.T, keys ...string) *Record {
	t.Helper()
	r := NewRecord()
	for i, k := range keys {
		require.NoError(t, r.Append(k, Scalar(i), ""))
	}
	return r
}

func TestRecord_InsertAfter(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		anchor string
		want   []string
	}{
		{"Middle", []string{"a", "b", "c"}, "b", []string{"a", "b", "x", "c"}},
		{"First", []string{"a", "b", "c"}, "a", []string{"a", "x", "b", "c"}},
		{"Last", []string{"a", "b", "c"}, "c", []string{"a", "b", "c", "x"}},
		{"Single", []string{"a"}, "a", []string{"a", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRecord(t, tt.keys...)
			anchorIdx := r.Index(tt.anchor)

			err := r.InsertAfter(tt.anchor, "x", Scalar("new"), "note")
			require.NoError(t, err)

			assert.Equal(t, tt.want, r.Keys())
			assert.Equal(t, anchorIdx+1, r.Index("x"))
			assert.Equal(t, "note", r.Comment("x"))

			// Lookups still resolve to the original values after the shift.
			for i, k := range tt.keys {
				v, ok := r.Get(k)
				require.True(t, ok)
				assert.Equal(t, i, v.Scalar())
			}
		})
	}
}

func TestRecord_InsertAfter_MissingAnchor(t *testing.T) {
	r := newTestRecord(t, "a", "b")

	err := r.InsertAfter("fitter", "n-iterations", Scalar(1), "")
	assert.ErrorIs(t, err, ErrAnchorNotFound)
	assert.Equal(t, []string{"a", "b"}, r.Keys())
	assert.False(t, r.Has("n-iterations"))
}

func TestRecord_InsertAfter_DuplicateKey(t *testing.T) {
	r := newTestRecord(t, "a", "b")

	err := r.InsertAfter("a", "b", Scalar(1), "")
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, []string{"a", "b"}, r.Keys())
}

func TestRecord_Annotate(t *testing.T) {
	r := newTestRecord(t, "a", "b")

	changed, err := r.Annotate("b", "hello")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "hello", r.Comment("b"))

	changed, err = r.Annotate("b", "hello")
	require.NoError(t, err)
	assert.False(t, changed)

	v, _ := r.Get("b")
	assert.Equal(t, 1, v.Scalar(), "annotation must not touch the value")

	_, err = r.Annotate("missing", "x")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRecord_Set(t *testing.T) {
	t.Run("Existing key keeps position and annotation", func(t *testing.T) {
		r := newTestRecord(t, "a", "b", "c")
		_, _ = r.Annotate("b", "keep me")

		r.Set("b", Scalar("replaced"))

		assert.Equal(t, []string{"a", "b", "c"}, r.Keys())
		v, _ := r.Get("b")
		assert.Equal(t, "replaced", v.Scalar())
		assert.Equal(t, "keep me", r.Comment("b"))
	})

	t.Run("Absent key is appended", func(t *testing.T) {
		r := newTestRecord(t, "a")
		r.Set("z", Scalar(true))
		assert.Equal(t, []string{"a", "z"}, r.Keys())
	})
}

func TestRecord_Nested(t *testing.T) {
	child := NewRecord()
	require.NoError(t, child.Append("method", Scalar("gibbs"), ""))
	require.NoError(t, child.Append("n-samples", Scalar(20000), ""))

	r := newTestRecord(t, "dmx")
	require.NoError(t, r.InsertAfter("dmx", "outlier", Nested(child), "outliers"))

	got, ok := r.Child("outlier")
	require.True(t, ok)
	require.NoError(t, got.InsertAfter("method", "n-burn", Scalar(1000), ""))
	assert.Equal(t, []string{"method", "n-burn", "n-samples"}, got.Keys())

	_, ok = r.Child("dmx")
	assert.False(t, ok, "scalar entries are not records")
}

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{"Null", Null(), false},
		{"False", Scalar(false), false},
		{"True", Scalar(true), true},
		{"Empty string", Scalar(""), false},
		{"String", Scalar("x"), true},
		{"Zero", Scalar(0), false},
		{"Int", Scalar(3), true},
		{"Zero float", Scalar(0.0), false},
		{"Empty sequence", Sequence(), false},
		{"Sequence", Strings([]string{"a"}), true},
		{"Empty record", Nested(NewRecord()), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Truthy())
		})
	}
}

func TestValue_StringSlice(t *testing.T) {
	ss, ok := Strings([]string{"b.tim", "a.tim"}).StringSlice()
	assert.True(t, ok)
	assert.Equal(t, []string{"b.tim", "a.tim"}, ss)

	_, ok = Sequence(Scalar("a"), Scalar(1)).StringSlice()
	assert.False(t, ok)

	_, ok = Scalar("a").StringSlice()
	assert.False(t, ok)
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, Strings([]string{"a", "b"}).Equal(Strings([]string{"a", "b"})))
	assert.False(t, Strings([]string{"a", "b"}).Equal(Strings([]string{"b", "a"})))
	assert.False(t, Scalar(1).Equal(Scalar("1")))
	assert.True(t, Null().Equal(Null()))
	assert.True(t, FlowSequence(Scalar(1)).Equal(Sequence(Scalar(1))), "style is not part of equality")
}

func TestRecord_SameData(t *testing.T) {
	a := newTestRecord(t, "a", "b")
	b := newTestRecord(t, "a", "b")
	_, _ = b.Annotate("a", "note")

	inner := newTestRecord(t, "x")
	_, _ = inner.Annotate("x", "nested note")
	require.NoError(t, a.Append("child", Nested(newTestRecord(t, "x")), ""))
	require.NoError(t, b.Append("child", Nested(inner), "block note"))

	assert.True(t, a.SameData(b))
	assert.False(t, a.Equal(b))

	b.Set("b", Scalar("other"))
	assert.False(t, a.SameData(b))
}

func TestRecord_NilSafe(t *testing.T) {
	var r *Record

	assert.Equal(t, 0, r.Len())
	assert.Nil(t, r.Keys())
	assert.Nil(t, r.Entries())
	assert.False(t, r.Has("a"))
	assert.Equal(t, -1, r.Index("a"))
	assert.Equal(t, "", r.Comment("a"))

	_, ok := r.Get("a")
	assert.False(t, ok)
	_, ok = r.Child("a")
	assert.False(t, ok)

	assert.True(t, r.Equal(nil))
	assert.True(t, r.Equal(NewRecord()))
	assert.False(t, r.SameData(newTestRecord(t, "a")))
}
