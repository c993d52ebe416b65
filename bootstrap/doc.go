// Package bootstrap runs a service binary: it validates the typed config,
// initializes logging, starts registered components in order, blocks until
// SIGINT, SIGTERM or context cancellation, then stops everything in reverse.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(api)
//	app.RegisterComponent(srv)
//	return app.Run(ctx)
package bootstrap
