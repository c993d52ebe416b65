package maps

import (
	"fmt"
	"strings"

	"github.com/kbukum/mapkit/validation"
)

// Provider selects the map SDK a map is created with.
type Provider string

// Supported providers.
const (
	ProviderGoogle Provider = "google"
	ProviderMapbox Provider = "mapbox"
)

// Default configuration values.
const (
	DefaultProvider  = ProviderGoogle
	DefaultContainer = "map"
	DefaultLatitude  = 14.6091
	DefaultLongitude = 121.0223
	DefaultZoom      = 12
)

// ParseProvider converts a configuration value into a Provider.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case ProviderGoogle, ProviderMapbox:
		return p, nil
	default:
		return "", fmt.Errorf("maps: unknown provider %q", s)
	}
}

// Config is the file/env representation of the map settings.
type Config struct {
	// Provider selects the initial provider: "google" or "mapbox".
	Provider string `mapstructure:"provider" json:"provider"`

	// Container is the id of the display node the map renders into.
	Container string `mapstructure:"container" json:"container"`

	// Center is the initial map center.
	Center GeoPoint `mapstructure:"center" json:"center"`

	// Zoom is the initial zoom level.
	Zoom float64 `mapstructure:"zoom" json:"zoom"`

	// Style is the style reference for providers that use style documents.
	Style string `mapstructure:"style" json:"style"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
// A zero center is replaced as a whole; (0,0) cannot be configured.
func (c *Config) ApplyDefaults() {
	if c.Provider == "" {
		c.Provider = string(DefaultProvider)
	}
	if c.Container == "" {
		c.Container = DefaultContainer
	}
	if c.Center == (GeoPoint{}) {
		c.Center = GeoPoint{Latitude: DefaultLatitude, Longitude: DefaultLongitude}
	}
	if c.Zoom == 0 {
		c.Zoom = DefaultZoom
	}
}

// Validate checks the settings.
func (c *Config) Validate() error {
	v := validation.New()
	v.OneOf("map.provider", strings.ToLower(c.Provider), []string{string(ProviderGoogle), string(ProviderMapbox)})
	v.Required("map.container", c.Container)
	v.Between("map.center.latitude", c.Center.Latitude, -90, 90)
	v.Between("map.center.longitude", c.Center.Longitude, -180, 180)
	v.Between("map.zoom", c.Zoom, 0, 24)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// MapConfig builds the creation config for a map rendered into node.
func (c *Config) MapConfig(node DisplayNode) MapConfig {
	return MapConfig{
		Container: node,
		Center:    c.Center,
		Zoom:      c.Zoom,
		Style:     c.Style,
	}
}
