package observability

import (
	"time"

	"github.com/kbukum/mapkit/validation"
)

// DefaultExportInterval is the push interval when none is configured.
const DefaultExportInterval = 15

// Config configures metric export.
type Config struct {
	// Enabled turns metric recording on.
	Enabled bool `mapstructure:"enabled"`
	// Endpoint is the OTLP HTTP collector host:port. Empty disables export.
	Endpoint string `mapstructure:"endpoint"`
	// Insecure sends to the collector without TLS.
	Insecure bool `mapstructure:"insecure"`
	// ExportInterval is the push interval in seconds.
	ExportInterval int `mapstructure:"export_interval"`
}

// ApplyDefaults fills in the export interval.
func (c *Config) ApplyDefaults() {
	if c.ExportInterval == 0 {
		c.ExportInterval = DefaultExportInterval
	}
}

// Validate checks the export interval.
func (c *Config) Validate() error {
	v := validation.New().
		Custom(c.ExportInterval > 0, "observability.export_interval", "must be positive")
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// Interval returns ExportInterval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.ExportInterval) * time.Second
}
