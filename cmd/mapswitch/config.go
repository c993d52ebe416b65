package main

import (
	"fmt"

	"github.com/kbukum/mapkit/config"
	"github.com/kbukum/mapkit/maps"
	"github.com/kbukum/mapkit/observability"
	"github.com/kbukum/mapkit/server"
)

const serviceName = "mapswitch"

// AppConfig is the mapswitch configuration file.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Map           maps.Config          `yaml:"map" mapstructure:"map"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills unset fields of every section.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Map.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Map.Validate(); err != nil {
		return fmt.Errorf("config.map: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return nil
}

// envDefaults registers keys so they can be set from MAPSWITCH_* variables
// without a config file. Viper only binds environment variables for keys it
// already knows.
func envDefaults() map[string]any {
	return map[string]any{
		"name":                          serviceName,
		"environment":                   "development",
		"map.provider":                  string(maps.DefaultProvider),
		"map.container":                 maps.DefaultContainer,
		"map.center.latitude":           maps.DefaultLatitude,
		"map.center.longitude":          maps.DefaultLongitude,
		"map.zoom":                      maps.DefaultZoom,
		"map.style":                     "",
		"server.host":                   "",
		"server.port":                   server.DefaultPort,
		"observability.enabled":         false,
		"observability.endpoint":        "",
		"observability.insecure":        false,
		"observability.export_interval": observability.DefaultExportInterval,
	}
}
