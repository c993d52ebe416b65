package mapapi

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/mapkit/component"
	"github.com/kbukum/mapkit/driver"
	"github.com/kbukum/mapkit/errors"
	"github.com/kbukum/mapkit/logger"
	"github.com/kbukum/mapkit/maps"
	"github.com/kbukum/mapkit/observability"
	"github.com/kbukum/mapkit/sse"
)

const componentName = "map-driver"

// Event types published when the map or its entities change.
const (
	EventMapSwitched     = "map.switched"
	EventEntityCreated   = "entity.created"
	EventEntityDestroyed = "entity.destroyed"
)

var _ component.Component = (*API)(nil)

// API serializes HTTP requests onto a driver and keeps the handle table
// for entities created through it.
type API struct {
	mu        sync.Mutex
	driver    *driver.Driver
	markers   map[string]maps.Marker
	polylines map[string]maps.Entity
	events    sse.Publisher
	metrics   *observability.Metrics
	log       *logger.Logger
}

// Option configures an API.
type Option func(*API)

// WithEvents publishes map and entity changes to p.
func WithEvents(p sse.Publisher) Option {
	return func(a *API) { a.events = p }
}

// WithMetrics records switches, map operations and errors on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *API) { a.metrics = m }
}

// New creates an API over d.
func New(d *driver.Driver, log *logger.Logger, opts ...Option) *API {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	a := &API{
		driver:    d,
		markers:   make(map[string]maps.Marker),
		polylines: make(map[string]maps.Entity),
		log:       log.WithComponent("mapapi"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Register mounts the routes on r.
func (a *API) Register(r gin.IRouter) {
	r.GET("/map", a.getMap)
	r.GET("/map/style", a.getStyle)
	r.POST("/map/switch", a.switchProvider)
	r.POST("/markers", a.addMarker)
	r.PUT("/markers/:id/position", a.setPosition)
	r.POST("/polylines", a.addPolyline)
	r.PUT("/entities/:id/opacity", a.setOpacity)
	r.DELETE("/entities/:id", a.destroy)
}

// Name implements component.Component.
func (a *API) Name() string { return componentName }

// Start creates the initial map.
func (a *API) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.driver.Map() != nil {
		return nil
	}
	start := time.Now()
	_, err := a.driver.CreateMap()
	status := observability.StatusOK
	if err != nil {
		status = observability.StatusError
	}
	a.metrics.RecordOperation(ctx, opMapCreate, string(a.driver.Provider()), status, time.Since(start))
	return err
}

// Stop forgets all handles. Maps have no teardown.
func (a *API) Stop(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resetLocked()
	return nil
}

// Health reports unhealthy until a map is active.
func (a *API) Health(context.Context) component.Health {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.driver.Map() == nil {
		return component.Health{Name: componentName, Status: component.StatusUnhealthy, Message: "no active map"}
	}
	return component.Health{
		Name:    componentName,
		Status:  component.StatusHealthy,
		Message: "provider " + string(a.driver.Provider()),
	}
}

// Entities returns the number of live handles.
func (a *API) Entities() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.markers) + len(a.polylines)
}

func (a *API) resetLocked() {
	if n := len(a.markers) + len(a.polylines); n > 0 {
		a.log.Warn("handles dropped with abandoned map", map[string]interface{}{"count": n})
	}
	clear(a.markers)
	clear(a.polylines)
}

func (a *API) entityLocked(id string) (maps.Entity, bool) {
	if m, ok := a.markers[id]; ok {
		return m, true
	}
	e, ok := a.polylines[id]
	return e, ok
}

func (a *API) publish(eventType string, payload any) {
	if a.events != nil {
		a.events.Publish(eventType, payload)
	}
}

func newHandleID() string { return uuid.NewString() }

func errUnknownEntity(id string) *errors.AppError {
	return errors.NotFound("entity", id)
}
