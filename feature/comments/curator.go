package comments

import (
	"timingcfg/core/document"

	"go.uber.org/zap"
)

// Note is a canonical annotation for a top-level key, or for a child of one
// when Child is set.
type Note struct {
	Parent string
	Child  string
	Text   string
}

// Path returns the dotted key the note applies to.
func (n Note) Path() string {
	if n.Child == "" {
		return n.Parent
	}
	return n.Parent + "." + n.Child
}

// TopLevel notes are applied whenever their key exists, whatever its value.
var TopLevel = []Note{
	{Parent: "free-params", Text: "parameters not included here will be frozen"},
	{Parent: "ignore", Text: "toa excision"},
}

// Children notes are applied only when the child holds a truthy value.
var Children = []Note{
	{Parent: "ignore", Child: "bad-toa", Text: "designated by [name, channel, sub-integration]"},
	{Parent: "ignore", Child: "bad-range", Text: "designated by [mjd_start, mjd_end, (backend optional)]"},
	{Parent: "ignore", Child: "bad-epoch", Text: "designated by basename string {backend}_{mjd}_{source}"},
	{Parent: "dmx", Child: "max-sw-delay", Text: "finer binning when solar wind delay > threshold (us)"},
	{Parent: "dmx", Child: "custom-dmx", Text: "designated by [mjd_low, mjd_hi, binsize]"},
}

// Curator applies the canonical annotations. Keys are never created.
type Curator struct {
	logger *zap.Logger
}

// NewCurator creates a curator. A nil logger disables diagnostics.
func NewCurator(log *zap.Logger) *Curator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Curator{logger: log}
}

// Curate annotates rec and reports whether any annotation text changed.
func (c *Curator) Curate(rec *document.Record) bool {
	changed := false
	for _, n := range TopLevel {
		if !rec.Has(n.Parent) {
			c.logger.Warn("cannot annotate missing field", zap.String("field", n.Path()))
			continue
		}
		changed = c.annotate(rec, n.Parent, n) || changed
	}
	for _, n := range Children {
		changed = c.applyIfPresentAndTruthy(rec, n) || changed
	}
	return changed
}

// applyIfPresentAndTruthy annotates the child of n.Parent only when the parent
// is a record and the child exists with a truthy value.
func (c *Curator) applyIfPresentAndTruthy(rec *document.Record, n Note) bool {
	log := c.logger.With(zap.String("field", n.Path()))

	parent, ok := rec.Child(n.Parent)
	if !ok {
		log.Warn("parent is missing or not a block, skipping annotation")
		return false
	}
	v, ok := parent.Get(n.Child)
	if !ok {
		log.Warn("field is missing, skipping annotation")
		return false
	}
	if !v.Truthy() {
		log.Info("field is empty, skipping annotation")
		return false
	}
	return c.annotate(parent, n.Child, n)
}

func (c *Curator) annotate(rec *document.Record, key string, n Note) bool {
	// The key was checked by the caller; ErrKeyNotFound cannot happen here.
	changed, err := rec.Annotate(key, n.Text)
	if err != nil {
		c.logger.Warn("annotation failed", zap.String("field", n.Path()), zap.Error(err))
		return false
	}
	if changed {
		c.logger.Debug("annotated field", zap.String("field", n.Path()))
	}
	return changed
}
