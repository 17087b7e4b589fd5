// Package history records the outcome of pipeline runs in a SQL database
// through GORM, so a CLI can show what earlier runs of a recipe produced.
//
// Only run metadata and the terminal's rendered value are stored; the
// elements of a sequence are never written.
//
//	store, err := history.Open(ctx, cfg.History, logger.Get("history"))
//	defer store.Close()
//	err = store.Record(ctx, history.FromOutcome(out, elapsed, runErr))
//	runs, err := store.Recent(ctx, "evens", 10)
package history
