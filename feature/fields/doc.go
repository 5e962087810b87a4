// Package fields sets individual timing config fields by name.
//
// Names are checked against the schema's allow-list first. Only results-dir
// (inside the noise block) and ephem can be set today; other schema keys are
// rejected with ErrNotImplemented and unknown names with ErrUnknownField.
// Rejections leave the document untouched.
package fields
