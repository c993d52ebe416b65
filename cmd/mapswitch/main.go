// Command mapswitch serves a map that can be switched between Google Maps
// and Mapbox GL at runtime, with markers and polylines managed over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kbukum/mapkit/bootstrap"
	"github.com/kbukum/mapkit/component"
	"github.com/kbukum/mapkit/config"
	"github.com/kbukum/mapkit/driver"
	"github.com/kbukum/mapkit/logger"
	"github.com/kbukum/mapkit/mapapi"
	"github.com/kbukum/mapkit/maps"
	_ "github.com/kbukum/mapkit/maps/google"
	_ "github.com/kbukum/mapkit/maps/mapbox"
	"github.com/kbukum/mapkit/observability"
	"github.com/kbukum/mapkit/server"
	"github.com/kbukum/mapkit/sse"
	"github.com/kbukum/mapkit/version"
)

func main() {
	var (
		configFile  = flag.String("config", "", "path to config.yml")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().String())
		return
	}

	if err := run(context.Background(), *configFile); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile string) error {
	cfg := &AppConfig{}
	opts := []config.LoaderOption{
		config.WithEnvPrefix("MAPSWITCH"),
		config.WithDefaults(envDefaults()),
	}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return err
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}

	provider, err := maps.ParseProvider(cfg.Map.Provider)
	if err != nil {
		return err
	}
	node := maps.NewNode(cfg.Map.Container)
	drv := driver.New(cfg.Map.MapConfig(node),
		driver.WithProvider(provider),
		driver.WithLogger(app.Logger),
	)

	var components []component.Component
	srv := server.New(cfg.Server, app.Logger)
	var apiOpts []mapapi.Option
	if cfg.Observability.Enabled {
		mp, err := observability.NewMeterProvider(ctx, &cfg.Observability, observability.Resource{
			Service:     cfg.Name,
			Version:     app.Version,
			Environment: cfg.Environment,
		})
		if err != nil {
			return err
		}
		metrics, err := observability.NewMetrics(mp.Meter(observability.MeterName))
		if err != nil {
			return err
		}
		// Registered first so pending metrics are flushed after everything else stops.
		components = append(components, observability.NewComponent(mp))
		srv.GinEngine().Use(observability.RequestMetrics(metrics))
		apiOpts = append(apiOpts, mapapi.WithMetrics(metrics))
	}

	hub := sse.NewHub(app.Logger)
	api := mapapi.New(drv, app.Logger, append(apiOpts, mapapi.WithEvents(hub))...)
	api.Register(srv.GinEngine())
	srv.GinEngine().GET("/events", sse.Handler(hub))
	srv.RegisterDefaultEndpoints(cfg.Name, app.Components.HealthAll)

	components = append(components, sse.NewComponent(hub), api, srv)
	for _, c := range components {
		if err := app.RegisterComponent(c); err != nil {
			return err
		}
	}

	app.OnReady(func(context.Context) error {
		app.Logger.Info("Serving map", map[string]interface{}{
			logger.FieldProvider: string(drv.Provider()),
			logger.FieldNode:     node.NodeID(),
			"addr":               srv.Addr(),
		})
		return nil
	})

	// Open streams would hold the server's graceful shutdown.
	app.OnStop(func(context.Context) error {
		hub.Stop()
		return nil
	})

	return app.Run(ctx)
}
