package reconcile

import (
	"strings"

	"timingcfg/core/document"
)

// ToaType is the TOA flavour encoded in a config's file name.
type ToaType string

const (
	// Narrowband TOAs. Narrowband release files carry no marker.
	Narrowband ToaType = "nb"
	// Wideband TOAs. Wideband release files contain "wb" in their name.
	Wideband ToaType = "wb"
)

// Label returns the spelling used by the toa-type field, e.g. "NB".
func (t ToaType) Label() string {
	return strings.ToUpper(string(t))
}

// Identity is what a config's file name says about it.
type Identity struct {
	// Source is the pulsar name, e.g. "J1713+0747".
	Source string `json:"source"`
	// Type is the TOA type, always lowercase.
	Type ToaType `json:"toa_type"`
	// Ext is the config extension without the dot, e.g. "yaml".
	Ext string `json:"ext"`
}

// Field names the engine reconciles.
const (
	FieldTimDirectory = "tim-directory"
	FieldToas         = "toas"
	FieldToaType      = "toa-type"
)

// Status classifies one check in a plan.
type Status string

const (
	// StatusOK means the declared value matches the release.
	StatusOK Status = "ok"
	// StatusStale means the declared value differs and will be replaced.
	StatusStale Status = "stale"
	// StatusMismatch means the declared value disagrees with the file name.
	// Nothing is corrected.
	StatusMismatch Status = "mismatch"
	// StatusMissing means the field is absent or unusable. Nothing is corrected.
	StatusMissing Status = "missing"
	// StatusEmpty means the declared list is present but has no entries.
	StatusEmpty Status = "empty"
)

// Check records the outcome of comparing one field.
type Check struct {
	// Field is the document key that was compared.
	Field string `json:"field"`

	// Status is the outcome.
	Status Status `json:"status"`

	// Detail is a human-readable explanation.
	Detail string `json:"detail"`
}

// Action is a planned replacement of one top-level field.
type Action struct {
	// Field is the key to replace.
	Field string `json:"field"`

	// Reason explains why the replacement is needed.
	Reason string `json:"reason"`

	// Value is the new value.
	Value document.Value `json:"-"`
}

// Plan is the result of comparing a document against a release. Building a
// plan never touches the document.
type Plan struct {
	// Identity is parsed from the document's file name.
	Identity Identity `json:"identity"`

	// Location is the release location the listing came from.
	Location string `json:"location"`

	// Listing is the sorted set of TOA files of this source and type.
	Listing []string `json:"listing"`

	// Checks holds one entry per compared field.
	Checks []Check `json:"checks"`

	// Actions holds the replacements needed to match the release.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate counts for a plan.
type PlanSummary struct {
	// Listed is the number of release files of this source and type.
	Listed int `json:"listed"`

	// Warnings counts checks that only warn.
	Warnings int `json:"warnings"`

	// Errors counts checks that block a correction.
	Errors int `json:"errors"`

	// Actions counts planned replacements.
	Actions int `json:"actions"`
}

// Options controls Reconcile.
type Options struct {
	// DryRun plans and logs without applying or writing.
	DryRun bool

	// Overwrite writes in place instead of to a suffixed copy.
	Overwrite bool

	// Suffix is appended to the output path when not overwriting.
	Suffix string
}

// Result is the outcome of Reconcile for one file.
type Result struct {
	// Plan is the plan that was built.
	Plan *Plan `json:"plan"`

	// Changes lists the fields replaced, in the order they were applied.
	Changes []string `json:"changes"`

	// Output is the path written to, or that would have been written to.
	Output string `json:"output"`

	// Written reports whether a save happened.
	Written bool `json:"written"`
}
