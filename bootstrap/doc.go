// Package bootstrap runs a service built around a provider registry.
//
// An App creates the registry from a config.ServiceConfig, lets OnConfigure
// callbacks register categories and providers, applies the configured
// selections, checks that every category can be resolved, and on shutdown
// closes the provider instances that were built.
//
//	cfg, _ := config.Load("blog-svc")
//	app, _ := bootstrap.New(cfg)
//	app.OnConfigure(registerProviders)
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package bootstrap
