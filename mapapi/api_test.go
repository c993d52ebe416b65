package mapapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/kbukum/mapkit/component"
	"github.com/kbukum/mapkit/driver"
	"github.com/kbukum/mapkit/errors"
	"github.com/kbukum/mapkit/logger"
	"github.com/kbukum/mapkit/maps"
	_ "github.com/kbukum/mapkit/maps/google"
	_ "github.com/kbukum/mapkit/maps/mapbox"
	"github.com/kbukum/mapkit/observability"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type harness struct {
	t      *testing.T
	api    *API
	engine *gin.Engine
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	d := driver.New(maps.MapConfig{
		Container: maps.NewNode("map"),
		Center:    maps.GeoPoint{Latitude: 14.6091, Longitude: 121.0223},
		Zoom:      12,
	}, driver.WithLogger(logger.Nop()))

	api := New(d, logger.Nop(), opts...)
	if err := api.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	engine := gin.New()
	api.Register(engine)
	return &harness{t: t, api: api, engine: engine}
}

func (h *harness) do(method, path string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			h.t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.engine.ServeHTTP(rr, req)
	return rr
}

func decodeData[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return env.Data
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) errors.ErrorCode {
	t.Helper()
	var body errors.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error %q: %v", rr.Body.String(), err)
	}
	return body.Error.Code
}

var manila = map[string]any{"latitude": 14.6091, "longitude": 121.0223}

type published struct {
	eventType string
	payload   any
}

type recordingPublisher struct {
	events []published
}

func (r *recordingPublisher) Publish(eventType string, payload any) {
	r.events = append(r.events, published{eventType, payload})
}

func TestGetMap(t *testing.T) {
	h := newHarness(t)
	rr := h.do(http.MethodGet, "/map", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	got := decodeData[MapResponse](t, rr)
	if got.Provider != maps.ProviderGoogle || got.Node != "map" {
		t.Errorf("unexpected map %+v", got)
	}
	if len(got.Providers) < 2 {
		t.Errorf("expected both providers listed, got %v", got.Providers)
	}
}

func TestMarkerLifecycle(t *testing.T) {
	h := newHarness(t)

	rr := h.do(http.MethodPost, "/markers", map[string]any{"position": manila})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	created := decodeData[EntityResponse](t, rr)
	if created.ID == "" || created.Kind != "marker" {
		t.Fatalf("unexpected entity %+v", created)
	}

	rr = h.do(http.MethodPut, "/markers/"+created.ID+"/position", map[string]any{"latitude": 14.61, "longitude": 121.02})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 moving marker, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = h.do(http.MethodPut, "/entities/"+created.ID+"/opacity", map[string]any{"opacity": 0.5})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 setting opacity, got %d: %s", rr.Code, rr.Body.String())
	}

	for range 2 {
		if rr = h.do(http.MethodDelete, "/entities/"+created.ID, nil); rr.Code != http.StatusNoContent {
			t.Fatalf("expected 204 on delete, got %d", rr.Code)
		}
	}
	if h.api.Entities() != 0 {
		t.Errorf("expected no handles, got %d", h.api.Entities())
	}

	rr = h.do(http.MethodPut, "/markers/"+created.ID+"/position", manila)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 after destroy, got %d", rr.Code)
	}
}

func TestPolylineLifecycle(t *testing.T) {
	h := newHarness(t)
	h.do(http.MethodPost, "/map/switch", map[string]any{"provider": "mapbox"})

	rr := h.do(http.MethodPost, "/polylines", map[string]any{
		"path":          []any{map[string]any{"latitude": 14.60, "longitude": 121.02}, map[string]any{"latitude": 14.61, "longitude": 121.03}},
		"stroke_color":  "#ff0000",
		"stroke_weight": 3,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	line := decodeData[EntityResponse](t, rr)

	if rr = h.do(http.MethodPut, "/entities/"+line.ID+"/opacity", map[string]any{"opacity": 0.2}); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr = h.do(http.MethodPut, "/markers/"+line.ID+"/position", manila); rr.Code != http.StatusNotFound {
		t.Errorf("expected polylines to have no position route, got %d", rr.Code)
	}
	if rr = h.do(http.MethodDelete, "/entities/"+line.ID, nil); rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
}

func TestValidationErrors(t *testing.T) {
	h := newHarness(t)
	created := decodeData[EntityResponse](t, h.do(http.MethodPost, "/markers", map[string]any{"position": manila}))

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		wantCode int
		wantErr  errors.ErrorCode
	}{
		{"marker out of range", http.MethodPost, "/markers", map[string]any{"position": map[string]any{"latitude": 95, "longitude": 0}}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"short polyline", http.MethodPost, "/polylines", map[string]any{"path": []any{manila}, "stroke_color": "#000", "stroke_weight": 1}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"malformed body", http.MethodPost, "/markers", "not an object", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"opacity missing", http.MethodPut, "/entities/" + created.ID + "/opacity", map[string]any{}, http.StatusBadRequest, errors.ErrCodeMissingField},
		{"opacity out of range", http.MethodPut, "/entities/" + created.ID + "/opacity", map[string]any{"opacity": 2}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"position out of range", http.MethodPut, "/markers/" + created.ID + "/position", map[string]any{"latitude": 0, "longitude": 200}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown entity", http.MethodPut, "/entities/" + uuid.NewString() + "/opacity", map[string]any{"opacity": 1}, http.StatusNotFound, errors.ErrCodeNotFound},
		{"malformed id on opacity", http.MethodPut, "/entities/nope/opacity", map[string]any{"opacity": 1}, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"malformed id on position", http.MethodPut, "/markers/nope/position", manila, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"malformed id on delete", http.MethodDelete, "/entities/nope", nil, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown provider", http.MethodPost, "/map/switch", map[string]any{"provider": "bing"}, http.StatusBadRequest, errors.ErrCodeProviderUnsupported},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := h.do(tc.method, tc.path, tc.body)
			if rr.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d: %s", tc.wantCode, rr.Code, rr.Body.String())
			}
			if got := errorCode(t, rr); got != tc.wantErr {
				t.Errorf("expected %s, got %s", tc.wantErr, got)
			}
		})
	}
}

func TestSwitchDropsHandles(t *testing.T) {
	h := newHarness(t)
	created := decodeData[EntityResponse](t, h.do(http.MethodPost, "/markers", map[string]any{"position": manila}))

	rr := h.do(http.MethodPost, "/map/switch", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := decodeData[MapResponse](t, rr); got.Provider != maps.ProviderMapbox || got.Node != "map" {
		t.Errorf("unexpected map after switch %+v", got)
	}
	if h.api.Entities() != 0 {
		t.Errorf("expected handles dropped, got %d", h.api.Entities())
	}
	if rr = h.do(http.MethodPut, "/entities/"+created.ID+"/opacity", map[string]any{"opacity": 1}); rr.Code != http.StatusNotFound {
		t.Errorf("expected old handle to be gone, got %d", rr.Code)
	}

	// The same request body works under the new provider.
	if rr = h.do(http.MethodPost, "/markers", map[string]any{"position": manila}); rr.Code != http.StatusCreated {
		t.Errorf("expected 201 under mapbox, got %d", rr.Code)
	}

	rr = h.do(http.MethodPost, "/map/switch", map[string]any{"provider": "google"})
	if got := decodeData[MapResponse](t, rr); got.Provider != maps.ProviderGoogle {
		t.Errorf("expected google, got %s", got.Provider)
	}
}

func TestComponentLifecycle(t *testing.T) {
	d := driver.New(maps.MapConfig{Container: maps.NewNode("map"), Zoom: 3}, driver.WithLogger(logger.Nop()))
	api := New(d, logger.Nop())

	if h := api.Health(context.Background()); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy before start, got %s", h.Status)
	}
	if err := api.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	first := d.Map()
	if err := api.Start(context.Background()); err != nil || d.Map() != first {
		t.Error("expected second Start to keep the map")
	}
	if h := api.Health(context.Background()); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy after start, got %s", h.Status)
	}
	if err := api.Stop(context.Background()); err != nil {
		t.Errorf("Stop: %v", err)
	}
}

func TestStartFailsOnUnmountedNode(t *testing.T) {
	node := maps.NewNode("map")
	node.Unmount()
	api := New(driver.New(maps.MapConfig{Container: node}, driver.WithLogger(logger.Nop())), logger.Nop())
	if err := api.Start(context.Background()); !errors.HasCode(err, errors.ErrCodeContainerNotMounted) {
		t.Errorf("expected CONTAINER_NOT_MOUNTED, got %v", err)
	}
}

func TestPublishesChanges(t *testing.T) {
	pub := &recordingPublisher{}
	h := newHarness(t, WithEvents(pub))

	rr := h.do(http.MethodPost, "/markers", map[string]any{"position": manila})
	created := decodeData[EntityResponse](t, rr)
	h.do(http.MethodDelete, "/entities/"+created.ID, nil)
	h.do(http.MethodDelete, "/entities/"+created.ID, nil)
	h.do(http.MethodPost, "/map/switch", nil)

	want := []string{EventEntityCreated, EventEntityDestroyed, EventMapSwitched}
	if len(pub.events) != len(want) {
		t.Fatalf("expected %d events, got %+v", len(want), pub.events)
	}
	for i, w := range want {
		if pub.events[i].eventType != w {
			t.Errorf("event %d: expected %s, got %s", i, w, pub.events[i].eventType)
		}
	}
	if got := pub.events[1].payload.(EntityResponse); got.ID != created.ID || got.Kind != "marker" {
		t.Errorf("unexpected destroyed payload %+v", got)
	}
	if got := pub.events[2].payload.(MapResponse); got.Provider != maps.ProviderMapbox {
		t.Errorf("unexpected switch payload %+v", got)
	}
}

func TestSwitchWithUnsizedEmptyBody(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/map/switch", strings.NewReader(""))
	req.ContentLength = -1
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.engine.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := decodeData[MapResponse](t, rr); got.Provider != maps.ProviderMapbox {
		t.Errorf("expected rotation to mapbox, got %s", got.Provider)
	}

	req = httptest.NewRequest(http.MethodPost, "/map/switch", strings.NewReader("{"))
	req.ContentLength = -1
	rr = httptest.NewRecorder()
	h.engine.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a truncated body, got %d", rr.Code)
	}
}

func TestGetStyle(t *testing.T) {
	h := newHarness(t)

	rr := h.do(http.MethodGet, "/map/style", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 under google, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := errorCode(t, rr); got != errors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", got)
	}

	h.do(http.MethodPost, "/map/switch", map[string]any{"provider": "mapbox"})
	line := decodeData[EntityResponse](t, h.do(http.MethodPost, "/polylines", map[string]any{
		"path":          []any{map[string]any{"latitude": 14.60, "longitude": 121.02}, map[string]any{"latitude": 14.61, "longitude": 121.03}},
		"stroke_color":  "#ff0000",
		"stroke_weight": 3,
	}))
	if line.ID == "" {
		t.Fatal("expected a polyline to be created")
	}

	rr = h.do(http.MethodGet, "/map/style", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 under mapbox, got %d: %s", rr.Code, rr.Body.String())
	}
	doc := decodeData[struct {
		Version int              `json:"version"`
		Center  [2]float64       `json:"center"`
		Sources map[string]any   `json:"sources"`
		Layers  []map[string]any `json:"layers"`
	}](t, rr)
	if doc.Version != 8 {
		t.Errorf("expected style version 8, got %d", doc.Version)
	}
	if doc.Center != [2]float64{121.0223, 14.6091} {
		t.Errorf("expected lng-first center, got %v", doc.Center)
	}
	if len(doc.Sources) != 1 || len(doc.Layers) != 1 || doc.Layers[0]["type"] != "line" {
		t.Errorf("expected one line source and layer, got %+v", doc)
	}
}

func counterFor(rm metricdata.ResourceMetrics, name, key, value string) int64 {
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if m.Name != name || !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				if v, ok := dp.Attributes.Value(attribute.Key(key)); ok && v.AsString() == value {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func TestRecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := observability.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	h := newHarness(t, WithMetrics(m))

	h.do(http.MethodPost, "/markers", map[string]any{"position": manila})
	h.do(http.MethodPost, "/map/switch", nil)
	h.do(http.MethodPost, "/map/switch", map[string]any{"provider": "bing"})
	h.do(http.MethodPut, "/entities/"+uuid.NewString()+"/opacity", map[string]any{"opacity": 1})

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	tests := []struct {
		metric, key, value string
		want               int64
	}{
		{"map.operation.total", "operation", "map.create", 1},
		{"map.operation.total", "operation", "marker.create", 1},
		{"map.switch.total", "status", observability.StatusOK, 1},
		{"map.switch.total", "status", observability.StatusError, 1},
		{"map.switch.total", "to", "mapbox", 1},
		{"error.total", "code", string(errors.ErrCodeProviderUnsupported), 1},
		{"error.total", "code", string(errors.ErrCodeNotFound), 1},
	}
	for _, tc := range tests {
		if got := counterFor(rm, tc.metric, tc.key, tc.value); got != tc.want {
			t.Errorf("%s{%s=%s} = %d, want %d", tc.metric, tc.key, tc.value, got, tc.want)
		}
	}
}
