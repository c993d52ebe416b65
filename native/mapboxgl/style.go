package mapboxgl

import (
	"encoding/json"
	"maps"

	"github.com/paulmach/orb/geojson"
)

// StyleVersion is the style specification version the documents follow.
const StyleVersion = 8

// Source is backing data a layer renders.
type Source interface {
	SourceType() string
}

// GeoJSONSource is a source backed by a single GeoJSON feature.
type GeoJSONSource struct {
	Data *geojson.Feature
}

// SourceType implements Source.
func (s *GeoJSONSource) SourceType() string { return "geojson" }

// MarshalJSON encodes the source as a style-spec source object.
func (s *GeoJSONSource) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string           `json:"type"`
		Data *geojson.Feature `json:"data"`
	}{Type: s.SourceType(), Data: s.Data})
}

// Layer is a rendering instruction over a source.
type Layer struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"`
	Source string         `json:"source"`
	Layout map[string]any `json:"layout,omitempty"`
	Paint  map[string]any `json:"paint,omitempty"`
}

func (l Layer) clone() Layer {
	l.Layout = maps.Clone(l.Layout)
	l.Paint = maps.Clone(l.Paint)
	return l
}

// StyleDocument is the serializable state of a map's style.
type StyleDocument struct {
	Version  int               `json:"version"`
	Center   [2]float64        `json:"center"`
	Zoom     float64           `json:"zoom"`
	Sources  map[string]Source `json:"sources"`
	Layers   []Layer           `json:"layers"`
	Metadata map[string]any    `json:"metadata,omitempty"`
}

// Style snapshots the map's sources and layers on top of its base style.
func (m *Map) Style() StyleDocument {
	layers := make([]Layer, len(m.layers))
	for i, l := range m.layers {
		layers[i] = l.clone()
	}
	return StyleDocument{
		Version:  StyleVersion,
		Center:   [2]float64{m.center.Lng, m.center.Lat},
		Zoom:     m.zoom,
		Sources:  maps.Clone(m.sources),
		Layers:   layers,
		Metadata: map[string]any{"mapkit:base-style": m.style},
	}
}
