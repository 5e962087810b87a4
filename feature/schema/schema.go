package schema

import (
	"fmt"

	"timingcfg/core/document"

	"go.uber.org/zap"
)

// Field is a key the current schema requires, with the position and
// annotation it gets when added to an older config.
type Field struct {
	// Key is the field name.
	Key string
	// Anchor is the existing key the field is inserted after.
	Anchor string
	// Comment is the annotation placed on the new key. Empty for none.
	Comment string
	// Default builds the value inserted when the field is missing.
	Default func() document.Value
}

// Canonical field names.
const (
	KeyIterations = "n-iterations"
	KeyNoise      = "noise"
	KeyDMX        = "dmx"
	KeyOutlier    = "outlier"
)

// Iterations is the fitter iteration count, added after fitter.
func Iterations() Field {
	return Field{
		Key:    KeyIterations,
		Anchor: "fitter",
		Default: func() document.Value {
			return document.Scalar(1)
		},
	}
}

// Noise is the noise block, added after bipm. resultsDir becomes its
// results-dir; empty leaves it null.
func Noise(resultsDir string) Field {
	return Field{
		Key:     KeyNoise,
		Anchor:  "bipm",
		Comment: "controls noise runs, apply results",
		Default: func() document.Value {
			dir := document.Null()
			if resultsDir != "" {
				dir = document.Scalar(resultsDir)
			}
			return record(entry{"results-dir", dir})
		},
	}
}

// DMX is the DMX block, added after noise.
func DMX() Field {
	return Field{
		Key:     KeyDMX,
		Anchor:  KeyNoise,
		Comment: "controls DMX windowing/fixing",
		Default: func() document.Value {
			return record(
				entry{"ignore-dmx", document.Scalar(false)},
				entry{"fratio", document.Scalar(1.1)},
				entry{"max-sw-delay", document.Scalar(0.1)},
				entry{"custom-dmx", document.FlowSequence()},
			)
		},
	}
}

// Outlier is the outlier analysis block, added after dmx.
func Outlier() Field {
	return Field{
		Key:     KeyOutlier,
		Anchor:  KeyDMX,
		Comment: "controls outlier analysis runs",
		Default: func() document.Value {
			return record(
				entry{"method", document.Scalar("gibbs")},
				entry{"n-burn", document.Scalar(1000)},
				entry{"n-samples", document.Scalar(20000)},
			)
		},
	}
}

// Canonical returns every required field in the order they must be applied:
// each anchor is either an original key or a field earlier in the list.
func Canonical(noiseDir string) []Field {
	return []Field{Iterations(), Noise(noiseDir), DMX(), Outlier()}
}

type entry struct {
	key   string
	value document.Value
}

func record(entries ...entry) document.Value {
	r := document.NewRecord()
	for _, e := range entries {
		// Keys are distinct literals.
		_ = r.Append(e.key, e.value, "")
	}
	return document.Nested(r)
}

// Ensure adds f to rec when the key is absent and reports whether it did.
// A present key is left as it is, whatever its value. A missing anchor is
// returned as an error wrapping document.ErrAnchorNotFound; the field is never
// appended elsewhere.
func Ensure(rec *document.Record, f Field, log *zap.Logger) (bool, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if rec.Has(f.Key) {
		log.Info("field already present", zap.String("field", f.Key))
		return false, nil
	}
	if err := rec.InsertAfter(f.Anchor, f.Key, f.Default(), f.Comment); err != nil {
		return false, fmt.Errorf("cannot add %s after %s: %w", f.Key, f.Anchor, err)
	}
	log.Info("added field", zap.String("field", f.Key), zap.String("after", f.Anchor))
	return true, nil
}

// EnsureAll applies fields in order and returns the keys that were added.
// It stops at the first error.
func EnsureAll(rec *document.Record, fields []Field, log *zap.Logger) ([]string, error) {
	var added []string
	for _, f := range fields {
		ok, err := Ensure(rec, f, log)
		if err != nil {
			return added, err
		}
		if ok {
			added = append(added, f.Key)
		}
	}
	return added, nil
}
