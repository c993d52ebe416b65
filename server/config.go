package server

import (
	"net/http"

	"github.com/kbukum/mapkit/server/middleware"
	"github.com/kbukum/mapkit/validation"
)

// Defaults applied by Config.ApplyDefaults. Timeouts are in seconds.
const (
	DefaultPort         = 8080
	DefaultReadTimeout  = 15
	DefaultWriteTimeout = 15
	DefaultIdleTimeout  = 60
	DefaultMaxBodySize  = "1MB"
)

// Config is the server section of the service config.
type Config struct {
	Host         string                `yaml:"host" mapstructure:"host"`
	Port         int                   `yaml:"port" mapstructure:"port"`
	ReadTimeout  int                   `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout int                   `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  int                   `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	MaxBodySize  string                `yaml:"max_body_size" mapstructure:"max_body_size"`
	CORS         middleware.CORSConfig `yaml:"cors" mapstructure:"cors"`
}

// ApplyDefaults fills zero fields. Browser hosts on any origin may call the
// map routes unless origins are configured.
func (c *Config) ApplyDefaults() {
	setDefault(&c.Port, DefaultPort)
	setDefault(&c.ReadTimeout, DefaultReadTimeout)
	setDefault(&c.WriteTimeout, DefaultWriteTimeout)
	setDefault(&c.IdleTimeout, DefaultIdleTimeout)
	setDefault(&c.MaxBodySize, DefaultMaxBodySize)

	cors := &c.CORS
	if len(cors.AllowedOrigins) == 0 {
		cors.AllowedOrigins = []string{"*"}
	}
	if len(cors.AllowedMethods) == 0 {
		cors.AllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	}
	if len(cors.AllowedHeaders) == 0 {
		cors.AllowedHeaders = []string{"Content-Type", "Accept", middleware.RequestIDHeader}
	}
}

func setDefault[T comparable](field *T, def T) {
	var zero T
	if *field == zero {
		*field = def
	}
}

// Validate checks ranges and that max_body_size parses.
func (c *Config) Validate() error {
	v := validation.New()
	v.Between("server.port", float64(c.Port), 0, 65535)
	v.Custom(c.ReadTimeout >= 0, "server.read_timeout", "must be non-negative")
	v.Custom(c.WriteTimeout >= 0, "server.write_timeout", "must be non-negative")
	v.Custom(c.IdleTimeout >= 0, "server.idle_timeout", "must be non-negative")
	if c.MaxBodySize != "" {
		v.Custom(middleware.ParseSize(c.MaxBodySize, -1) > 0, "server.max_body_size", "must be a size such as 512KB or 1MB")
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
