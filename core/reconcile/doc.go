// Package reconcile keeps a timing config's declared inputs in line with the
// TOA release it should be reading.
//
// # Identity
//
// A config's file name is "source.type.ext", e.g. "J1713+0747.nb.yaml".
// ParseIdentity splits it and rejects anything else with ErrInvalidFilename.
//
// # Plan and apply
//
// Plan lists the release for "source*ext", keeps the files of the config's TOA
// type and sorts them. It then compares three fields:
//
//   - toa-type must equal the uppercased type marker. A mismatch is reported
//     and never corrected.
//   - tim-directory must equal the release location. A missing value is an
//     error and is left alone; a different value is replaced.
//   - toas, sorted, must equal the listing. A missing value is an error and is
//     left alone; an empty list is reported and then compared like any other;
//     a different list is replaced by the listing.
//
// Apply performs the replacements and returns the changed field names.
// Reconcile does load, plan, apply and a save that only happens when the
// change list is non-empty.
//
// # Usage
//
//	engine := reconcile.NewEngine(lister, store, logger)
//	result, err := engine.Reconcile(ctx, "J1713+0747.nb.yaml", cfg.Release, reconcile.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Changes) // [tim-directory toas]
package reconcile
