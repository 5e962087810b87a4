// Package comments applies the canonical end-of-line annotations that explain
// the less obvious fields of a timing config.
//
// free-params and ignore are always annotated when present. The children of
// ignore and dmx listed in Children are annotated only when they hold a
// value; an empty child is left bare and a missing one is reported. No key
// is ever created and no value is ever changed.
package comments
