// Package google implements the maps contracts on top of the Google Maps
// object model. Markers and polylines are native overlays that are removed
// by detaching them from their map.
//
// Import the package for its side effect to register the provider:
//
//	import _ "github.com/kbukum/mapkit/maps/google"
package google

import (
	"github.com/kbukum/mapkit/logger"
	"github.com/kbukum/mapkit/maps"
	"github.com/kbukum/mapkit/native/gmaps"
)

func init() {
	maps.RegisterFactory(maps.ProviderGoogle, func(cfg maps.MapConfig, log *logger.Logger) (maps.MapContainer, error) {
		return NewMap(cfg, log)
	})
}

// Map is a Google map rendered into a display node.
type Map struct {
	node   maps.DisplayNode
	native *gmaps.Map
	log    *logger.Logger
}

// NewMap renders a map into cfg.Container. Style is ignored.
func NewMap(cfg maps.MapConfig, log *logger.Logger) (*Map, error) {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	native, err := gmaps.NewMap(cfg.Container, gmaps.MapOptions{
		Center: latLng(cfg.Center),
		Zoom:   cfg.Zoom,
	})
	if err != nil {
		return nil, err
	}
	return &Map{
		node:   cfg.Container,
		native: native,
		log:    log.WithComponent("maps.google"),
	}, nil
}

// DisplayNode implements maps.MapContainer.
func (m *Map) DisplayNode() maps.DisplayNode { return m.node }

// Native returns the underlying map object.
func (m *Map) Native() *gmaps.Map { return m.native }

// AddMarker implements maps.MapContainer.
func (m *Map) AddMarker(cfg maps.MarkerConfig) (maps.Marker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	native := gmaps.NewMarker(gmaps.MarkerOptions{
		Position: latLng(cfg.Position),
		Map:      m.native,
	})
	m.log.Debug("marker added", map[string]interface{}{
		logger.FieldEntity: "marker",
		"latitude":         cfg.Position.Latitude,
		"longitude":        cfg.Position.Longitude,
	})
	return &Marker{native: native, log: m.log}, nil
}

// AddPolyline implements maps.MapContainer.
func (m *Map) AddPolyline(cfg maps.PolylineConfig) (maps.Entity, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	path := make([]gmaps.LatLng, len(cfg.Path))
	for i, p := range cfg.Path {
		path[i] = latLng(p)
	}
	native := gmaps.NewPolyline(gmaps.PolylineOptions{
		Path:         path,
		StrokeColor:  cfg.StrokeColor,
		StrokeWeight: cfg.StrokeWeight,
		Map:          m.native,
	})
	m.log.Debug("polyline added", map[string]interface{}{
		logger.FieldEntity: "polyline",
		logger.FieldPoints: len(path),
	})
	return &Polyline{native: native, log: m.log}, nil
}

// Marker is a native marker overlay.
type Marker struct {
	native *gmaps.Marker
	log    *logger.Logger
}

// Native returns the underlying marker.
func (mk *Marker) Native() *gmaps.Marker { return mk.native }

// Destroy detaches the marker from its map.
func (mk *Marker) Destroy() {
	mk.native.SetMap(nil)
}

// SetOpacity sets the marker opacity. Values outside [0,1] are ignored.
func (mk *Marker) SetOpacity(opacity float64) maps.Entity {
	if err := maps.ValidateOpacity(opacity); err != nil {
		mk.log.Warn("opacity ignored", map[string]interface{}{
			logger.FieldEntity:  "marker",
			logger.FieldOpacity: opacity,
		})
		return mk
	}
	mk.native.SetOpacity(opacity)
	return mk
}

// SetPosition moves the marker. Out-of-range coordinates are ignored.
func (mk *Marker) SetPosition(p maps.GeoPoint) maps.PointMarker {
	if err := p.Validate(); err != nil {
		mk.log.Warn("position ignored", logger.ErrorFields("set-position", err))
		return mk
	}
	mk.native.SetPosition(latLng(p))
	return mk
}

// Polyline is a native polyline overlay.
type Polyline struct {
	native *gmaps.Polyline
	log    *logger.Logger
}

// Native returns the underlying polyline.
func (pl *Polyline) Native() *gmaps.Polyline { return pl.native }

// Destroy detaches the polyline from its map.
func (pl *Polyline) Destroy() {
	pl.native.SetMap(nil)
}

// SetOpacity sets the stroke opacity. Values outside [0,1] are ignored.
func (pl *Polyline) SetOpacity(opacity float64) maps.Entity {
	if err := maps.ValidateOpacity(opacity); err != nil {
		pl.log.Warn("opacity ignored", map[string]interface{}{
			logger.FieldEntity:  "polyline",
			logger.FieldOpacity: opacity,
		})
		return pl
	}
	pl.native.SetOptions(gmaps.PolylineOptions{StrokeOpacity: &opacity})
	return pl
}

func latLng(p maps.GeoPoint) gmaps.LatLng {
	return gmaps.LatLng{Lat: p.Latitude, Lng: p.Longitude}
}
