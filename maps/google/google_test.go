package google

import (
	"math"
	"testing"

	"github.com/kbukum/mapkit/errors"
	"github.com/kbukum/mapkit/logger"
	"github.com/kbukum/mapkit/maps"
)

const epsilon = 1e-9

func newTestMap(t *testing.T) *Map {
	t.Helper()
	m, err := NewMap(maps.MapConfig{
		Container: maps.NewNode("map"),
		Center:    maps.GeoPoint{Latitude: 14.6091, Longitude: 121.0223},
		Zoom:      12,
	}, logger.Nop())
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	return m
}

func TestFactoryRegistered(t *testing.T) {
	node := maps.NewNode("map")
	m, err := maps.New(maps.ProviderGoogle, maps.MapConfig{Container: node, Zoom: 12}, logger.Nop())
	if err != nil {
		t.Fatalf("maps.New: %v", err)
	}
	if _, ok := m.(*Map); !ok {
		t.Fatalf("expected *google.Map, got %T", m)
	}
	if m.DisplayNode() != node {
		t.Error("expected DisplayNode to equal the configured container")
	}
}

func TestNewMapPropagatesUnmountedContainer(t *testing.T) {
	node := maps.NewNode("map")
	node.Unmount()
	_, err := NewMap(maps.MapConfig{Container: node, Zoom: 12}, logger.Nop())
	if !errors.HasCode(err, errors.ErrCodeContainerNotMounted) {
		t.Errorf("expected CONTAINER_NOT_MOUNTED, got %v", err)
	}
}

func TestMarkerPositionRoundTrip(t *testing.T) {
	m := newTestMap(t)
	points := []maps.GeoPoint{
		{Latitude: 14.6091, Longitude: 121.0223},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 90, Longitude: -180},
		{Latitude: 0, Longitude: 0},
	}
	for _, p := range points {
		mk, err := m.AddMarker(maps.MarkerConfig{Position: p})
		if err != nil {
			t.Fatalf("AddMarker(%+v): %v", p, err)
		}
		got := mk.(*Marker).Native().GetPosition()
		if math.Abs(got.Lat-p.Latitude) > epsilon || math.Abs(got.Lng-p.Longitude) > epsilon {
			t.Errorf("position %+v read back as %+v", p, got)
		}
	}
}

func TestAddThenMoveMarker(t *testing.T) {
	m := newTestMap(t)
	mk, err := m.AddMarker(maps.MarkerConfig{Position: maps.GeoPoint{Latitude: 14.6091, Longitude: 121.0223}})
	if err != nil {
		t.Fatalf("AddMarker: %v", err)
	}
	mk.SetPosition(maps.GeoPoint{Latitude: 14.61, Longitude: 121.02})

	got := mk.(*Marker).Native().GetPosition()
	if got.Lat != 14.61 || got.Lng != 121.02 {
		t.Errorf("expected (14.61,121.02), got %+v", got)
	}
}

func TestSetPositionIgnoresInvalidPoint(t *testing.T) {
	m := newTestMap(t)
	mk, _ := m.AddMarker(maps.MarkerConfig{Position: maps.GeoPoint{Latitude: 1, Longitude: 2}})
	mk.SetPosition(maps.GeoPoint{Latitude: 91, Longitude: 2})
	if got := mk.(*Marker).Native().GetPosition(); got.Lat != 1 {
		t.Errorf("expected position unchanged, got %+v", got)
	}
}

func TestAddMarkerRejectsInvalidPosition(t *testing.T) {
	m := newTestMap(t)
	_, err := m.AddMarker(maps.MarkerConfig{Position: maps.GeoPoint{Latitude: 100}})
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
	if len(m.Native().Markers()) != 0 {
		t.Error("expected no native marker to be created")
	}
}

func TestMarkerOpacity(t *testing.T) {
	m := newTestMap(t)
	mk, _ := m.AddMarker(maps.MarkerConfig{Position: maps.GeoPoint{Latitude: 1, Longitude: 2}})

	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"transparent", 0, 0},
		{"half", 0.5, 0.5},
		{"opaque", 1, 1},
		{"out of range ignored", 1.5, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if mk.SetOpacity(tc.value) != maps.Entity(mk) {
				t.Error("expected SetOpacity to return the same entity")
			}
			if got := mk.(*Marker).Native().GetOpacity(); got != tc.want {
				t.Errorf("expected opacity %v, got %v", tc.want, got)
			}
		})
	}
}

func TestPolylineOpacityAndDestroy(t *testing.T) {
	m := newTestMap(t)
	e, err := m.AddPolyline(maps.PolylineConfig{
		Path:         []maps.GeoPoint{{Latitude: 14.60, Longitude: 121.02}, {Latitude: 14.61, Longitude: 121.03}},
		StrokeColor:  "#ff0000",
		StrokeWeight: 3,
	})
	if err != nil {
		t.Fatalf("AddPolyline: %v", err)
	}
	native := e.(*Polyline).Native()
	if native.StrokeColor() != "#ff0000" || native.StrokeWeight() != 3 {
		t.Errorf("unexpected stroke %q %v", native.StrokeColor(), native.StrokeWeight())
	}
	path := native.GetPath()
	if len(path) != 2 || path[0].Lat != 14.60 || path[1].Lng != 121.03 {
		t.Errorf("unexpected path %+v", path)
	}

	e.SetOpacity(0.3)
	if native.StrokeOpacity() != 0.3 {
		t.Errorf("expected stroke opacity 0.3, got %v", native.StrokeOpacity())
	}

	e.Destroy()
	e.Destroy()
	if len(m.Native().Polylines()) != 0 {
		t.Error("expected polyline to be removed")
	}
}

func TestDestroyIsIdempotentAndIsolated(t *testing.T) {
	m := newTestMap(t)
	a, _ := m.AddMarker(maps.MarkerConfig{Position: maps.GeoPoint{Latitude: 1, Longitude: 1}})
	b, _ := m.AddMarker(maps.MarkerConfig{Position: maps.GeoPoint{Latitude: 2, Longitude: 2}})

	a.Destroy()
	a.Destroy()

	remaining := m.Native().Markers()
	if len(remaining) != 1 || remaining[0] != b.(*Marker).Native() {
		t.Errorf("expected only the second marker to remain, got %d", len(remaining))
	}
}

func TestAddPolylineRejectsShortPath(t *testing.T) {
	m := newTestMap(t)
	_, err := m.AddPolyline(maps.PolylineConfig{
		Path:         []maps.GeoPoint{{Latitude: 1, Longitude: 1}},
		StrokeColor:  "#000",
		StrokeWeight: 1,
	})
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}
