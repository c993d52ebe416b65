package mapboxgl

import (
	"slices"

	"github.com/kbukum/mapkit/errors"
)

// Marker is a DOM element positioned on a map.
type Marker struct {
	lngLat     LngLat
	positioned bool
	m          *Map
}

// NewMarker creates a detached marker with no position.
func NewMarker() *Marker {
	return &Marker{}
}

// SetLngLat sets the marker position.
func (mk *Marker) SetLngLat(ll LngLat) *Marker {
	mk.lngLat = ll
	mk.positioned = true
	return mk
}

// GetLngLat returns the marker position and whether one has been set.
func (mk *Marker) GetLngLat() (LngLat, bool) {
	return mk.lngLat, mk.positioned
}

// AddTo attaches the marker to m. The marker element is placed from its
// committed position, so SetLngLat must be called first.
func (mk *Marker) AddTo(m *Map) error {
	if m == nil {
		return errors.NativeSDK(SDK, "marker target map is nil")
	}
	if !mk.positioned {
		return errors.NativeSDK(SDK, "marker position must be set before adding it to a map")
	}
	if mk.m == m {
		return nil
	}
	mk.Remove()
	mk.m = m
	m.markers = append(m.markers, mk)
	return nil
}

// Remove detaches the marker from its map. Detached markers are left as is.
func (mk *Marker) Remove() {
	if mk.m == nil {
		return
	}
	mk.m.markers = slices.DeleteFunc(mk.m.markers, func(o *Marker) bool { return o == mk })
	mk.m = nil
}

// IsAttached reports whether the marker is on a map.
func (mk *Marker) IsAttached() bool { return mk.m != nil }
