// Package document models timing configs as ordered, comment-bearing records
// and reads and writes them as YAML.
//
// # Model
//
// A Document is a Record: an ordered list of entries (key, value, annotation)
// with a key index for constant-time lookup. Values are null, scalars,
// sequences or nested records. The only operation that changes key order is
// InsertAfter, which places one new key directly after an existing anchor and
// fails with ErrAnchorNotFound rather than appending somewhere else.
//
// Annotations are end-of-line comments. They are stored on the entry, so they
// move with the key.
//
// # Round-trip
//
// Decoding keeps the yaml.v3 node of every value. Untouched values are written
// back from those nodes, which preserves quoting, flow style, head comments and
// comments inside sequences. Values replaced through Set or InsertAfter are
// rendered fresh.
//
// # Store
//
// Store loads and saves documents through an afero.Fs. Save writes a sibling
// temp file and renames it over the target. ResolveOutputPath implements the
// overwrite-or-suffix naming policy.
//
// # Usage
//
//	store := document.NewStore(afero.NewOsFs(), logger, document.DefaultIndent)
//	path := "J1713+0747.nb.yaml"
//	doc, err := store.Load(path)
//	if err != nil {
//	    return err
//	}
//	if err := doc.InsertAfter("fitter", "n-iterations", document.Scalar(1), ""); err != nil {
//	    return err
//	}
//	err = store.Save(doc, document.ResolveOutputPath(path, false, "fix"))
package document
