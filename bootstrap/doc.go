// Package bootstrap runs a finite task with a uniform lifecycle: validated
// config, initialized logger, start hooks, signal-aware cancellation and
// ordered shutdown hooks.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnStop(func(ctx context.Context) error { return mp.Shutdown(ctx) })
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return runRecipe(ctx, cfg)
//	})
package bootstrap
