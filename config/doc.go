// Package config loads service configuration from a YAML file, a .env file
// and the environment using Viper.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("mapswitch", &cfg,
//	    config.WithEnvPrefix("MAPSWITCH"),
//	    config.WithDefaults(map[string]any{"map.provider": "google"}),
//	)
//
// Environment variables override file values for every known key, using
// the prefix and underscores for dots (MAPSWITCH_MAP_PROVIDER=mapbox).
// A key is known when it appears in the file or in the defaults.
package config
