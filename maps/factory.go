package maps

import (
	"fmt"
	stdmaps "maps"
	"slices"

	"github.com/kbukum/mapkit/errors"
	"github.com/kbukum/mapkit/logger"
)

// Factory creates a map for one provider. The config has already been validated.
type Factory func(cfg MapConfig, log *logger.Logger) (MapContainer, error)

var factories = make(map[Provider]Factory)

// RegisterFactory registers the map factory for a provider.
// Provider packages call this from an init function.
func RegisterFactory(p Provider, f Factory) {
	factories[p] = f
}

// Providers returns the registered providers, sorted.
func Providers() []Provider {
	return slices.Sorted(stdmaps.Keys(factories))
}

// New validates cfg and creates a map with the factory registered for p.
// Make sure the provider package has been imported (e.g.
// _ "github.com/kbukum/mapkit/maps/mapbox") so its factory is registered.
// Errors from the provider are returned wrapped, never retried.
func New(p Provider, cfg MapConfig, log *logger.Logger) (MapContainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f, ok := factories[p]
	if !ok {
		return nil, errors.ProviderUnsupported(string(p))
	}

	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log.Info("creating map", map[string]interface{}{
		logger.FieldProvider: string(p),
		logger.FieldNode:     cfg.Container.NodeID(),
		"zoom":               cfg.Zoom,
	})

	m, err := f(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("maps: create %s map: %w", p, err)
	}
	return m, nil
}
