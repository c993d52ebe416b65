// Package gmaps is a headless model of the Google Maps JavaScript object
// model: a Map bound to a container element, and Marker / Polyline overlays
// that are attached to a map through their map property.
//
// Overlays are owned by the caller. Setting an overlay's map to nil detaches
// it from rendering; the map keeps no reference to detached overlays.
package gmaps

import (
	"slices"

	"github.com/kbukum/mapkit/errors"
)

// SDK is the name reported in native errors.
const SDK = "gmaps"

// LatLng is a latitude-first coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Container is the element a Map renders into.
type Container interface {
	NodeID() string
}

// mountable is implemented by containers that know whether they are part of
// the display tree.
type mountable interface {
	Mounted() bool
}

// MapOptions configures a new Map.
type MapOptions struct {
	Center LatLng
	Zoom   float64
}

// Map is a rendered map bound to a container.
type Map struct {
	div       Container
	center    LatLng
	zoom      float64
	markers   []*Marker
	polylines []*Polyline
}

// NewMap renders a map into div. The container must be mounted.
func NewMap(div Container, opts MapOptions) (*Map, error) {
	if div == nil {
		return nil, errors.NativeSDK(SDK, "map container is nil")
	}
	if mc, ok := div.(mountable); ok && !mc.Mounted() {
		return nil, errors.ContainerNotMounted(div.NodeID())
	}
	return &Map{div: div, center: opts.Center, zoom: opts.Zoom}, nil
}

// GetDiv returns the container the map renders into.
func (m *Map) GetDiv() Container { return m.div }

// GetCenter returns the map center.
func (m *Map) GetCenter() LatLng { return m.center }

// GetZoom returns the zoom level.
func (m *Map) GetZoom() float64 { return m.zoom }

// Markers returns the markers currently attached to the map, in attach order.
func (m *Map) Markers() []*Marker { return slices.Clone(m.markers) }

// Polylines returns the polylines currently attached to the map, in attach order.
func (m *Map) Polylines() []*Polyline { return slices.Clone(m.polylines) }
