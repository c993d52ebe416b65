package gmaps

import "slices"

// MarkerOptions configures a new Marker.
type MarkerOptions struct {
	Position LatLng
	Map      *Map
}

// Marker is a pin anchored at a single position.
type Marker struct {
	position LatLng
	opacity  float64
	m        *Map
}

// NewMarker creates a marker and attaches it when opts.Map is set.
func NewMarker(opts MarkerOptions) *Marker {
	mk := &Marker{position: opts.Position, opacity: 1}
	mk.SetMap(opts.Map)
	return mk
}

// SetMap attaches the marker to m, detaching it from its previous map.
// A nil map detaches the marker.
func (mk *Marker) SetMap(m *Map) {
	if mk.m == m {
		return
	}
	if mk.m != nil {
		mk.m.markers = slices.DeleteFunc(mk.m.markers, func(o *Marker) bool { return o == mk })
	}
	mk.m = m
	if m != nil {
		m.markers = append(m.markers, mk)
	}
}

// GetMap returns the map the marker is attached to, or nil.
func (mk *Marker) GetMap() *Map { return mk.m }

// SetPosition moves the marker.
func (mk *Marker) SetPosition(p LatLng) { mk.position = p }

// GetPosition returns the marker position.
func (mk *Marker) GetPosition() LatLng { return mk.position }

// SetOpacity sets the marker opacity.
func (mk *Marker) SetOpacity(v float64) { mk.opacity = v }

// GetOpacity returns the marker opacity.
func (mk *Marker) GetOpacity() float64 { return mk.opacity }

// PolylineOptions configures a Polyline. In SetOptions, zero-valued fields
// and a nil StrokeOpacity leave the current value unchanged.
type PolylineOptions struct {
	Path          []LatLng
	StrokeColor   string
	StrokeWeight  float64
	StrokeOpacity *float64
	Map           *Map
}

// Polyline is a line through an ordered path.
type Polyline struct {
	path          []LatLng
	strokeColor   string
	strokeWeight  float64
	strokeOpacity float64
	m             *Map
}

// NewPolyline creates a polyline and attaches it when opts.Map is set.
func NewPolyline(opts PolylineOptions) *Polyline {
	pl := &Polyline{strokeOpacity: 1}
	pl.SetOptions(opts)
	return pl
}

// SetOptions merges opts into the polyline.
func (pl *Polyline) SetOptions(opts PolylineOptions) {
	if opts.Path != nil {
		pl.path = slices.Clone(opts.Path)
	}
	if opts.StrokeColor != "" {
		pl.strokeColor = opts.StrokeColor
	}
	if opts.StrokeWeight != 0 {
		pl.strokeWeight = opts.StrokeWeight
	}
	if opts.StrokeOpacity != nil {
		pl.strokeOpacity = *opts.StrokeOpacity
	}
	if opts.Map != nil {
		pl.SetMap(opts.Map)
	}
}

// SetMap attaches the polyline to m, detaching it from its previous map.
// A nil map detaches the polyline.
func (pl *Polyline) SetMap(m *Map) {
	if pl.m == m {
		return
	}
	if pl.m != nil {
		pl.m.polylines = slices.DeleteFunc(pl.m.polylines, func(o *Polyline) bool { return o == pl })
	}
	pl.m = m
	if m != nil {
		m.polylines = append(m.polylines, pl)
	}
}

// GetMap returns the map the polyline is attached to, or nil.
func (pl *Polyline) GetMap() *Map { return pl.m }

// GetPath returns a copy of the polyline path.
func (pl *Polyline) GetPath() []LatLng { return slices.Clone(pl.path) }

// StrokeColor returns the stroke color.
func (pl *Polyline) StrokeColor() string { return pl.strokeColor }

// StrokeWeight returns the stroke width in pixels.
func (pl *Polyline) StrokeWeight() float64 { return pl.strokeWeight }

// StrokeOpacity returns the stroke opacity.
func (pl *Polyline) StrokeOpacity() float64 { return pl.strokeOpacity }
