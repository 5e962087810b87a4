package schema

import (
	"testing"

	"timingcfg/core/document"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const legacyConfig = `source: J1713+0747
toas: [J1713+0747_430_ASP.tim]
free-params: [F0, F1]
toa-type: NB
fitter: DownhillGLSFitter
ephem: DE440
bipm: BIPM2019
ignore:
  bad-toa:
changelog: []
`

func decode(t *testing.T, s string) *document.Document {
	t.Helper()
	doc, err := document.Decode([]byte(s))
	require.NoError(t, err)
	return doc
}

func TestEnsure_InsertsAfterAnchor(t *testing.T) {
	tests := []struct {
		name   string
		prep   []Field
		field  Field
		anchor string
	}{
		{"Iterations", nil, Iterations(), "fitter"},
		{"Noise", nil, Noise(""), "bipm"},
		{"DMX", []Field{Noise("")}, DMX(), "noise"},
		{"Outlier", []Field{Noise(""), DMX()}, Outlier(), "dmx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := decode(t, legacyConfig)
			_, err := EnsureAll(doc.Record, tt.prep, nil)
			require.NoError(t, err)

			before := doc.Keys()
			anchorIdx := doc.Index(tt.anchor)

			changed, err := Ensure(doc.Record, tt.field, zap.NewNop())
			require.NoError(t, err)
			assert.True(t, changed)
			assert.Equal(t, anchorIdx+1, doc.Index(tt.field.Key))

			// The original keys keep their relative order.
			var rest []string
			for _, k := range doc.Keys() {
				if k != tt.field.Key {
					rest = append(rest, k)
				}
			}
			assert.Equal(t, before, rest)
			assert.Equal(t, tt.field.Comment, doc.Comment(tt.field.Key))
		})
	}
}

func TestEnsure_Idempotent(t *testing.T) {
	doc := decode(t, legacyConfig)
	core, logs := observer.New(zapcore.InfoLevel)

	changed, err := Ensure(doc.Record, Iterations(), zap.New(core))
	require.NoError(t, err)
	assert.True(t, changed)
	keys := doc.Keys()

	changed, err = Ensure(doc.Record, Iterations(), zap.New(core))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, keys, doc.Keys())
	assert.Equal(t, 1, logs.FilterMessage("field already present").Len())
}

func TestEnsure_KeepsExistingValue(t *testing.T) {
	doc := decode(t, "fitter: GLSFitter\nn-iterations: 0\n")

	changed, err := Ensure(doc.Record, Iterations(), nil)
	require.NoError(t, err)
	assert.False(t, changed, "presence is by key, not by value")

	v, _ := doc.Get(KeyIterations)
	assert.Equal(t, 0, v.Scalar())
}

func TestEnsure_MissingAnchor(t *testing.T) {
	doc := decode(t, "source: J1713+0747\nephem: DE440\n")

	changed, err := Ensure(doc.Record, Iterations(), nil)
	assert.False(t, changed)
	assert.ErrorIs(t, err, document.ErrAnchorNotFound)
	assert.ErrorContains(t, err, "n-iterations")
	assert.Equal(t, []string{"source", "ephem"}, doc.Keys())
}

func TestEnsureAll(t *testing.T) {
	doc := decode(t, legacyConfig)

	added, err := EnsureAll(doc.Record, Canonical("/noise/results/"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"n-iterations", "noise", "dmx", "outlier"}, added)
	assert.Equal(t, []string{
		"source", "toas", "free-params", "toa-type", "fitter", "n-iterations",
		"ephem", "bipm", "noise", "dmx", "outlier", "ignore", "changelog",
	}, doc.Keys())

	out, err := document.Encode(doc, document.DefaultIndent)
	require.NoError(t, err)
	again := decode(t, string(out))
	assert.True(t, doc.Equal(again.Record), "encoded:\n%s", out)

	noise, ok := again.Child(KeyNoise)
	require.True(t, ok)
	dir, _ := noise.Get("results-dir")
	assert.Equal(t, "/noise/results/", dir.Scalar())

	dmx, ok := again.Child(KeyDMX)
	require.True(t, ok)
	assert.Equal(t, []string{"ignore-dmx", "fratio", "max-sw-delay", "custom-dmx"}, dmx.Keys())
	fratio, _ := dmx.Get("fratio")
	assert.Equal(t, 1.1, fratio.Scalar())

	outlier, ok := again.Child(KeyOutlier)
	require.True(t, ok)
	method, _ := outlier.Get("method")
	assert.Equal(t, "gibbs", method.Scalar())
	assert.Equal(t, "controls outlier analysis runs", again.Comment(KeyOutlier))

	added, err = EnsureAll(again.Record, Canonical(""), nil)
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestEnsureAll_StopsAtMissingAnchor(t *testing.T) {
	doc := decode(t, "fitter: GLSFitter\nephem: DE440\n")

	added, err := EnsureAll(doc.Record, Canonical(""), nil)
	assert.ErrorIs(t, err, document.ErrAnchorNotFound)
	assert.Equal(t, []string{"n-iterations"}, added)
	assert.False(t, doc.Has(KeyDMX))
}

func TestNoise_NullResultsDir(t *testing.T) {
	v := Noise("").Default()
	rec, ok := v.Record()
	require.True(t, ok)
	dir, ok := rec.Get("results-dir")
	require.True(t, ok)
	assert.True(t, dir.IsNull())
}
