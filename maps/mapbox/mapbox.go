// Package mapbox implements the maps contracts on top of the Mapbox GL
// object model. Lines are not native objects in Mapbox GL: each polyline is
// a GeoJSON source plus a "line" layer sharing a generated id, and the
// returned Line handle carries only the map adapter and that id.
//
// Import the package for its side effect to register the provider:
//
//	import _ "github.com/kbukum/mapkit/maps/mapbox"
package mapbox

import (
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/kbukum/mapkit/logger"
	"github.com/kbukum/mapkit/maps"
	"github.com/kbukum/mapkit/native/mapboxgl"
)

// DefaultStyle is used when MapConfig.Style is empty.
const DefaultStyle = "mapbox://styles/mapbox/streets-v12"

func init() {
	maps.RegisterFactory(maps.ProviderMapbox, func(cfg maps.MapConfig, log *logger.Logger) (maps.MapContainer, error) {
		return NewMap(cfg, log)
	})
}

// Map is a Mapbox GL map rendered into a display node.
type Map struct {
	node   maps.DisplayNode
	native *mapboxgl.Map
	log    *logger.Logger
}

// NewMap renders a map into cfg.Container using cfg.Style, or DefaultStyle.
func NewMap(cfg maps.MapConfig, log *logger.Logger) (*Map, error) {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	style := cfg.Style
	if style == "" {
		style = DefaultStyle
	}
	native, err := mapboxgl.NewMap(mapboxgl.Options{
		Container: cfg.Container,
		Style:     style,
		Center:    lngLat(cfg.Center),
		Zoom:      cfg.Zoom,
	})
	if err != nil {
		return nil, err
	}
	return &Map{
		node:   cfg.Container,
		native: native,
		log:    log.WithComponent("maps.mapbox"),
	}, nil
}

// DisplayNode implements maps.MapContainer.
func (m *Map) DisplayNode() maps.DisplayNode { return m.node }

// Native returns the underlying map object.
func (m *Map) Native() *mapboxgl.Map { return m.native }

// AddMarker implements maps.MapContainer. The position is committed before
// the marker is attached.
func (m *Map) AddMarker(cfg maps.MarkerConfig) (maps.Marker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	native := mapboxgl.NewMarker().SetLngLat(lngLat(cfg.Position))
	if err := native.AddTo(m.native); err != nil {
		return nil, err
	}
	m.log.Debug("marker added", map[string]interface{}{
		logger.FieldEntity: "marker",
		"latitude":         cfg.Position.Latitude,
		"longitude":        cfg.Position.Longitude,
	})
	return &Marker{native: native, log: m.log}, nil
}

// AddPolyline implements maps.MapContainer. It registers a GeoJSON source
// and a line layer under one generated id.
func (m *Map) AddPolyline(cfg maps.PolylineConfig) (maps.Entity, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	line := make(orb.LineString, len(cfg.Path))
	for i, p := range cfg.Path {
		line[i] = orb.Point{p.Longitude, p.Latitude}
	}

	if err := m.native.AddSource(id, &mapboxgl.GeoJSONSource{Data: geojson.NewFeature(line)}); err != nil {
		return nil, err
	}
	err := m.native.AddLayer(mapboxgl.Layer{
		ID:     id,
		Type:   "line",
		Source: id,
		Layout: map[string]any{
			"line-join": "round",
			"line-cap":  "round",
		},
		Paint: map[string]any{
			"line-color": cfg.StrokeColor,
			"line-width": cfg.StrokeWeight,
		},
	})
	if err != nil {
		if rmErr := m.native.RemoveSource(id); rmErr != nil {
			m.log.Warn("orphaned line source", logger.ErrorFields("add-polyline", rmErr))
		}
		return nil, err
	}

	m.log.Debug("polyline added", map[string]interface{}{
		logger.FieldEntity:  "polyline",
		logger.FieldLayerID: id,
		logger.FieldPoints:  len(line),
	})
	return Line{m: m, id: id}, nil
}

// StyleDocument implements maps.StyleSource with the native style snapshot.
func (m *Map) StyleDocument() any { return m.native.Style() }

// Line is a polyline drawn as a source and a layer sharing one id.
type Line struct {
	m  *Map
	id string
}

// ID returns the id of the line's source and layer.
func (l Line) ID() string { return l.id }

// Path returns the line's coordinates, or nil once the line is destroyed.
func (l Line) Path() []maps.GeoPoint {
	src, ok := l.m.native.GetSource(l.id).(*mapboxgl.GeoJSONSource)
	if !ok || src.Data == nil {
		return nil
	}
	ls, ok := src.Data.Geometry.(orb.LineString)
	if !ok {
		return nil
	}
	path := make([]maps.GeoPoint, len(ls))
	for i, p := range ls {
		path[i] = maps.GeoPoint{Latitude: p.Lat(), Longitude: p.Lon()}
	}
	return path
}

// Destroy removes the layer and then its source. Parts already removed are
// skipped, so a second call does nothing.
func (l Line) Destroy() {
	native, log := l.m.native, l.m.log
	removed := false
	if native.GetLayer(l.id) != nil {
		if err := native.RemoveLayer(l.id); err != nil {
			log.Warn("remove line layer failed", logger.ErrorFields("destroy", err))
		} else {
			removed = true
		}
	}
	if native.GetSource(l.id) != nil {
		if err := native.RemoveSource(l.id); err != nil {
			log.Warn("remove line source failed", logger.ErrorFields("destroy", err))
		} else {
			removed = true
		}
	}
	if removed {
		log.Debug("polyline destroyed", map[string]interface{}{logger.FieldLayerID: l.id})
	}
}

// SetOpacity sets the layer's line-opacity. Values outside [0,1] are ignored.
func (l Line) SetOpacity(opacity float64) maps.Entity {
	if err := maps.ValidateOpacity(opacity); err != nil {
		l.m.log.Warn("opacity ignored", map[string]interface{}{
			logger.FieldLayerID: l.id,
			logger.FieldOpacity: opacity,
		})
		return l
	}
	if err := l.m.native.SetPaintProperty(l.id, "line-opacity", opacity); err != nil {
		l.m.log.Warn("set line opacity failed", logger.ErrorFields("set-opacity", err))
	}
	return l
}

// Marker is a native marker element.
type Marker struct {
	native *mapboxgl.Marker
	log    *logger.Logger
}

// Native returns the underlying marker.
func (mk *Marker) Native() *mapboxgl.Marker { return mk.native }

// Destroy removes the marker from its map.
func (mk *Marker) Destroy() {
	mk.native.Remove()
}

// SetOpacity is accepted and ignored: Mapbox GL markers have no opacity.
func (mk *Marker) SetOpacity(float64) maps.Entity {
	return mk
}

// SetPosition moves the marker. Out-of-range coordinates are ignored.
func (mk *Marker) SetPosition(p maps.GeoPoint) maps.PointMarker {
	if err := p.Validate(); err != nil {
		mk.log.Warn("position ignored", logger.ErrorFields("set-position", err))
		return mk
	}
	mk.native.SetLngLat(lngLat(p))
	return mk
}

func lngLat(p maps.GeoPoint) mapboxgl.LngLat {
	return mapboxgl.LngLat{Lng: p.Longitude, Lat: p.Latitude}
}
