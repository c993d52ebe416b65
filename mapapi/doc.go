// Package mapapi exposes a driver over HTTP.
//
// Routes:
//
//	GET    /map                    active provider and display node
//	GET    /map/style              style document, where the provider keeps one
//	POST   /map/switch             switch provider, {"provider": "..."} optional
//	POST   /markers                {"position": {...}}
//	PUT    /markers/:id/position   {"latitude": ..., "longitude": ...}
//	POST   /polylines              {"path": [...], "stroke_color": ..., "stroke_weight": ...}
//	PUT    /entities/:id/opacity   {"opacity": ...}
//	DELETE /entities/:id
//
// Handles returned by the create routes are valid until the next provider
// switch; a switch abandons the previous map and forgets its handles.
//
// Entity ids in paths must be UUIDs; other values answer 400.
//
// With WithEvents, switches and entity creation or removal are published as
// map.switched, entity.created and entity.destroyed events. With
// WithMetrics, switches, map operations and error codes are counted.
package mapapi
