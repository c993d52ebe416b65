// Package maps defines provider-agnostic capability contracts for
// interactive maps and the factory that builds a map for a provider.
//
// Application code talks to three contracts only:
//
//   - MapContainer: the map itself; creates markers and polylines.
//   - Entity: anything drawn on a map; can be destroyed and faded.
//   - PointMarker: an entity anchored at a single position.
//
// Provider packages implement the contracts over a native SDK and register
// themselves with RegisterFactory in an init function:
//
//	import (
//	    "github.com/kbukum/mapkit/maps"
//	    _ "github.com/kbukum/mapkit/maps/google"
//	    _ "github.com/kbukum/mapkit/maps/mapbox"
//	)
//
//	m, err := maps.New(maps.ProviderMapbox, cfg, log)
//	marker, err := m.AddMarker(maps.MarkerConfig{Position: cfg.Center})
//	marker.SetPosition(maps.GeoPoint{Latitude: 14.61, Longitude: 121.02})
//
// # Configuration
//
//	map:
//	  provider: "mapbox"
//	  container: "map"
//	  center:
//	    latitude: 14.6091
//	    longitude: 121.0223
//	  zoom: 12
package maps
