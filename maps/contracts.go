package maps

// DisplayNode is the host-supplied rendering target a map attaches to.
// Nodes that also implement Mounted() bool are checked by providers before
// a map is created on them.
type DisplayNode interface {
	NodeID() string
}

// MapContainer is a live map created by a provider.
type MapContainer interface {
	// DisplayNode returns the node the map was created on.
	DisplayNode() DisplayNode

	// AddMarker places a marker at cfg.Position.
	AddMarker(cfg MarkerConfig) (Marker, error)

	// AddPolyline draws a line through cfg.Path in order.
	AddPolyline(cfg PolylineConfig) (Entity, error)
}

// Entity is anything rendered on a map.
type Entity interface {
	// Destroy removes the entity from its map. The handle is invalid
	// afterwards; calling Destroy again is a no-op.
	Destroy()

	// SetOpacity sets the opacity in [0,1] and returns the entity for
	// chaining. Providers without native opacity support accept the call
	// and do nothing.
	SetOpacity(opacity float64) Entity
}

// PointMarker is an entity anchored at a single position.
type PointMarker interface {
	// SetPosition moves the marker. Setting the current position again is a no-op.
	SetPosition(p GeoPoint) PointMarker
}

// Marker is the handle returned by AddMarker.
type Marker interface {
	Entity
	PointMarker
}

// StyleSource is implemented by maps whose provider keeps a serializable
// style document. Not every provider does; check with a type assertion.
type StyleSource interface {
	StyleDocument() any
}
