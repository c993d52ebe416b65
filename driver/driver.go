// Package driver holds the active map and switches it between providers.
//
// A Driver owns the provider selector and the map created with it. Callers
// create the map once, add entities through the maps contracts, and request
// a switch when the host asks for one. A switch builds a new map from the
// same MapConfig and replaces the stored one; the previous map is abandoned
// with its entities, not torn down.
//
// A Driver is not safe for concurrent use. Hosts that serve concurrent
// requests serialize access themselves.
package driver

import (
	"fmt"
	"slices"

	"github.com/kbukum/mapkit/errors"
	"github.com/kbukum/mapkit/logger"
	"github.com/kbukum/mapkit/maps"
)

// Factory creates a map for a provider. maps.New is the default.
type Factory func(p maps.Provider, cfg maps.MapConfig, log *logger.Logger) (maps.MapContainer, error)

// DefaultRotation is the order SwitchProvider cycles through.
var DefaultRotation = []maps.Provider{maps.ProviderGoogle, maps.ProviderMapbox}

// Option configures a Driver.
type Option func(*Driver)

// WithProvider sets the initial provider. Defaults to the first provider
// of the rotation.
func WithProvider(p maps.Provider) Option {
	return func(d *Driver) {
		d.provider = p
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(d *Driver) {
		d.log = l
	}
}

// WithFactory replaces maps.New as the map constructor.
func WithFactory(f Factory) Option {
	return func(d *Driver) {
		d.factory = f
	}
}

// WithRotation sets the providers SwitchProvider cycles through.
func WithRotation(providers ...maps.Provider) Option {
	return func(d *Driver) {
		if len(providers) > 0 {
			d.rotation = slices.Clone(providers)
		}
	}
}

// Driver holds the active provider and the map created with it.
type Driver struct {
	cfg      maps.MapConfig
	provider maps.Provider
	rotation []maps.Provider
	active   maps.MapContainer
	factory  Factory
	log      *logger.Logger
}

// New creates a driver that builds maps from cfg. No map is created until
// CreateMap is called.
func New(cfg maps.MapConfig, opts ...Option) *Driver {
	d := &Driver{
		cfg:      cfg,
		rotation: slices.Clone(DefaultRotation),
		factory:  maps.New,
	}
	for _, o := range opts {
		o(d)
	}
	if d.provider == "" {
		d.provider = d.rotation[0]
	}
	if d.log == nil {
		d.log = logger.GetGlobalLogger()
	}
	d.log = d.log.WithComponent("driver")
	return d
}

// Provider returns the active provider.
func (d *Driver) Provider() maps.Provider { return d.provider }

// Map returns the active map, or nil before CreateMap.
func (d *Driver) Map() maps.MapContainer { return d.active }

// CreateMap creates a map with the active provider and stores it. A map
// created earlier is replaced.
func (d *Driver) CreateMap() (maps.MapContainer, error) {
	return d.SwitchTo(d.provider)
}

// SwitchProvider moves to the provider after the active one in the rotation
// and rebuilds the map.
func (d *Driver) SwitchProvider() (maps.MapContainer, error) {
	return d.SwitchTo(d.Next())
}

// SwitchTo builds a map with p from the driver's MapConfig and makes it
// active. On failure the active provider and map are left unchanged.
func (d *Driver) SwitchTo(p maps.Provider) (maps.MapContainer, error) {
	m, err := d.factory(p, d.cfg, d.log)
	if err != nil {
		d.log.Error("map creation failed", map[string]interface{}{
			logger.FieldProvider: string(p),
			logger.FieldError:    err.Error(),
		})
		return nil, fmt.Errorf("driver: switch to %s: %w", p, err)
	}

	previous := d.provider
	if d.active != nil {
		d.log.Warn("previous map abandoned", map[string]interface{}{
			logger.FieldProvider: string(previous),
			logger.FieldNode:     d.active.DisplayNode().NodeID(),
		})
	}
	d.provider = p
	d.active = m
	d.log.Info("map active", map[string]interface{}{
		logger.FieldProvider: string(p),
		"previous":           string(previous),
	})
	return m, nil
}

// AddMarker places a marker on the active map.
func (d *Driver) AddMarker(cfg maps.MarkerConfig) (maps.Marker, error) {
	if d.active == nil {
		return nil, errNoMap()
	}
	return d.active.AddMarker(cfg)
}

// AddPolyline draws a line on the active map.
func (d *Driver) AddPolyline(cfg maps.PolylineConfig) (maps.Entity, error) {
	if d.active == nil {
		return nil, errNoMap()
	}
	return d.active.AddPolyline(cfg)
}

// Next returns the provider after the active one in the rotation.
func (d *Driver) Next() maps.Provider {
	i := slices.Index(d.rotation, d.provider)
	return d.rotation[(i+1)%len(d.rotation)]
}

func errNoMap() *errors.AppError {
	return errors.NotFound("map", "").WithDetail("reason", "CreateMap has not been called")
}
