// Package observability exports map metrics through OpenTelemetry.
//
// A MeterProvider is built from Config. With an endpoint it pushes to an
// OTLP HTTP collector on a fixed interval; without one it still aggregates,
// so extra readers (tests, a future Prometheus bridge) can collect.
//
//	mp, err := observability.NewMeterProvider(ctx, &cfg.Observability, observability.Resource{Service: "mapswitch"})
//	metrics, err := observability.NewMetrics(mp.Meter("mapkit"))
//	metrics.RecordSwitch(ctx, "google", "mapbox", observability.StatusOK)
//
// Nil *Metrics is valid and records nothing.
package observability
