// Package mapboxgl is a headless model of the Mapbox GL JS object model.
//
// A Map owns a style made of sources (backing data) and layers (rendering
// instructions that reference a source by id). Lines have no first-class
// object; they exist only as a GeoJSON source plus a "line" layer. Markers
// are DOM elements positioned in longitude-first coordinates.
package mapboxgl

import (
	"maps"
	"slices"

	"github.com/kbukum/mapkit/errors"
)

// SDK is the name reported in native errors.
const SDK = "mapboxgl"

// LngLat is a longitude-first coordinate pair.
type LngLat struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Container is the element a Map renders into.
type Container interface {
	NodeID() string
}

type mountable interface {
	Mounted() bool
}

// Options configures a new Map.
type Options struct {
	Container Container
	Style     string
	Center    LngLat
	Zoom      float64
}

// Map is a rendered map bound to a container.
type Map struct {
	container Container
	style     string
	center    LngLat
	zoom      float64
	sources   map[string]Source
	layers    []*Layer
	markers   []*Marker
}

// NewMap renders a map into opts.Container. The container must be mounted
// and a style URL is required.
func NewMap(opts Options) (*Map, error) {
	if opts.Container == nil {
		return nil, errors.NativeSDK(SDK, "container is required")
	}
	if mc, ok := opts.Container.(mountable); ok && !mc.Mounted() {
		return nil, errors.ContainerNotMounted(opts.Container.NodeID())
	}
	if opts.Style == "" {
		return nil, errors.NativeSDK(SDK, "style is required")
	}
	return &Map{
		container: opts.Container,
		style:     opts.Style,
		center:    opts.Center,
		zoom:      opts.Zoom,
		sources:   make(map[string]Source),
	}, nil
}

// GetContainer returns the element the map renders into.
func (m *Map) GetContainer() Container { return m.container }

// GetStyleURL returns the base style the map was created with.
func (m *Map) GetStyleURL() string { return m.style }

// GetCenter returns the map center.
func (m *Map) GetCenter() LngLat { return m.center }

// GetZoom returns the zoom level.
func (m *Map) GetZoom() float64 { return m.zoom }

// AddSource registers a source under id.
func (m *Map) AddSource(id string, src Source) error {
	if src == nil {
		return errors.NativeSDK(SDK, "source is nil")
	}
	if _, ok := m.sources[id]; ok {
		return errors.AlreadyExists("source", id)
	}
	m.sources[id] = src
	return nil
}

// GetSource returns the source registered under id, or nil.
func (m *Map) GetSource(id string) Source {
	return m.sources[id]
}

// RemoveSource unregisters a source. It fails while a layer still uses it.
func (m *Map) RemoveSource(id string) error {
	if _, ok := m.sources[id]; !ok {
		return errors.NotFound("source", id)
	}
	for _, l := range m.layers {
		if l.Source == id {
			return errors.NativeSDK(SDK, "source \""+id+"\" cannot be removed while layer \""+l.ID+"\" is using it")
		}
	}
	delete(m.sources, id)
	return nil
}

// AddLayer appends a layer. Its source must already be registered.
func (m *Map) AddLayer(layer Layer) error {
	if m.layerIndex(layer.ID) >= 0 {
		return errors.AlreadyExists("layer", layer.ID)
	}
	if _, ok := m.sources[layer.Source]; !ok {
		return errors.NotFound("source", layer.Source)
	}
	l := layer.clone()
	m.layers = append(m.layers, &l)
	return nil
}

// GetLayer returns a copy of the layer registered under id, or nil.
func (m *Map) GetLayer(id string) *Layer {
	i := m.layerIndex(id)
	if i < 0 {
		return nil
	}
	l := m.layers[i].clone()
	return &l
}

// RemoveLayer removes the layer registered under id.
func (m *Map) RemoveLayer(id string) error {
	i := m.layerIndex(id)
	if i < 0 {
		return errors.NotFound("layer", id)
	}
	m.layers = slices.Delete(m.layers, i, i+1)
	return nil
}

// SetPaintProperty sets one paint property on a layer.
func (m *Map) SetPaintProperty(layerID, name string, value any) error {
	i := m.layerIndex(layerID)
	if i < 0 {
		return errors.NotFound("layer", layerID)
	}
	l := m.layers[i]
	if l.Paint == nil {
		l.Paint = make(map[string]any)
	}
	l.Paint[name] = value
	return nil
}

// GetPaintProperty returns a paint property of a layer, or nil.
func (m *Map) GetPaintProperty(layerID, name string) any {
	i := m.layerIndex(layerID)
	if i < 0 {
		return nil
	}
	return m.layers[i].Paint[name]
}

// LayerIDs returns the ids of all layers in render order.
func (m *Map) LayerIDs() []string {
	ids := make([]string, len(m.layers))
	for i, l := range m.layers {
		ids[i] = l.ID
	}
	return ids
}

// SourceIDs returns the ids of all sources, sorted.
func (m *Map) SourceIDs() []string {
	return slices.Sorted(maps.Keys(m.sources))
}

// Markers returns the markers currently attached to the map, in attach order.
func (m *Map) Markers() []*Marker { return slices.Clone(m.markers) }

func (m *Map) layerIndex(id string) int {
	return slices.IndexFunc(m.layers, func(l *Layer) bool { return l.ID == id })
}
