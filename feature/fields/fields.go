package fields

import (
	"errors"
	"fmt"
	"slices"

	"timingcfg/core/document"

	"go.uber.org/zap"
)

// Known lists every key of the timing config schema, nested ones included.
var Known = []string{
	"source", "par-directory", "tim-directory", "timing-model", "compare-model",
	"toas", "free-params", "free-dmx", "toa-type", "fitter", "n-iterations",
	"ephem", "bipm", "noise", "results-dir", "dmx", "ignore-dmx", "fratio",
	"max-sw-delay", "custom-dmx", "ignore", "mjd-start", "mjd-end", "snr-cut",
	"bad-toa", "bad-range", "bad-epoch", "changelog",
}

var (
	// ErrUnknownField is returned for names outside the schema.
	ErrUnknownField = errors.New("unknown field")
	// ErrNotImplemented is returned for schema fields that cannot be set yet.
	ErrNotImplemented = errors.New("recognized but not yet implemented")
	// ErrMissingParent is returned when the block holding a nested field is
	// absent or not a block.
	ErrMissingParent = errors.New("parent block missing")
)

// setter applies one supported update.
type setter func(rec *document.Record, value string) error

var setters = map[string]setter{
	"results-dir": func(rec *document.Record, value string) error {
		noise, ok := rec.Child("noise")
		if !ok {
			return fmt.Errorf("%w: results-dir lives in noise", ErrMissingParent)
		}
		noise.Set("results-dir", document.Scalar(value))
		return nil
	},
	"ephem": func(rec *document.Record, value string) error {
		rec.Set("ephem", document.Scalar(value))
		return nil
	},
}

// IsKnown reports whether field is a schema key.
func IsKnown(field string) bool {
	return slices.Contains(Known, field)
}

// IsSupported reports whether Set can change field.
func IsSupported(field string) bool {
	_, ok := setters[field]
	return ok
}

// Set updates field to value. Unknown fields are logged as warnings and
// fields without a setter as errors; in both cases rec is left unmodified and
// the returned error says why.
func Set(rec *document.Record, field, value string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("field", field))

	if !IsKnown(field) {
		log.Warn("unknown field, nothing set")
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	set, ok := setters[field]
	if !ok {
		log.Error("field is recognized but not yet implemented")
		return fmt.Errorf("%s: %w", field, ErrNotImplemented)
	}
	if err := set(rec, value); err != nil {
		log.Error("cannot set field", zap.Error(err))
		return err
	}
	log.Info("set field", zap.String("value", value))
	return nil
}
