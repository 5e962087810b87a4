// Package timing runs the per-file operations of timingcfg.
//
// Every operation loads one config, changes it in memory and decides whether
// to save:
//
//   - Check, Reconcile and the Add* operations save only when something
//     changed, so repeating them against the same release writes nothing.
//   - Curate, SetField and Roundtrip always save.
//
// Outputs go to "path.suffix" unless Overwrite is set. Each save is recorded
// in the history recorder; a failing recorder is logged and ignored.
//
// # Usage
//
//	svc := timing.NewService(store, engine, recorder, log, timing.Options{
//	    Release: cfg.Release,
//	    Suffix:  cfg.Document.Suffix,
//	})
//	out, err := svc.Check(ctx, "J1713+0747.nb.yaml")
package timing
