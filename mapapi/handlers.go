package mapapi

import (
	stderrors "errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/mapkit/errors"
	"github.com/kbukum/mapkit/logger"
	"github.com/kbukum/mapkit/maps"
	"github.com/kbukum/mapkit/observability"
	"github.com/kbukum/mapkit/server"
	"github.com/kbukum/mapkit/validation"
)

// MapResponse describes the active map.
type MapResponse struct {
	Provider  maps.Provider   `json:"provider"`
	Node      string          `json:"node"`
	Providers []maps.Provider `json:"providers"`
}

// SwitchRequest selects the provider to switch to. An empty provider moves
// to the next one in the rotation.
type SwitchRequest struct {
	Provider string `json:"provider"`
}

const (
	kindMarker   = "marker"
	kindPolyline = "polyline"
)

// Operation names recorded in map.operation.* metrics.
const (
	opMapCreate      = "map.create"
	opMarkerCreate   = "marker.create"
	opMarkerMove     = "marker.position"
	opPolylineCreate = "polyline.create"
	opEntityOpacity  = "entity.opacity"
	opEntityDestroy  = "entity.destroy"
)

// EntityResponse identifies a created entity.
type EntityResponse struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// OpacityRequest sets an entity's opacity.
type OpacityRequest struct {
	Opacity *float64 `json:"opacity"`
}

func (a *API) getMap(c *gin.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	m := a.driver.Map()
	if m == nil {
		a.fail(c, errors.NotFound("map", ""))
		return
	}
	server.RespondOK(c, a.mapResponseLocked(m))
}

// getStyle answers 404 for providers that keep no style document.
func (a *API) getStyle(c *gin.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	m := a.driver.Map()
	if m == nil {
		a.fail(c, errors.NotFound("map", ""))
		return
	}
	styled, ok := m.(maps.StyleSource)
	if !ok {
		a.fail(c, errors.NotFound("style", string(a.driver.Provider())).
			WithDetail("reason", "provider keeps no style document"))
		return
	}
	server.RespondOK(c, styled.StyleDocument())
}

func (a *API) switchProvider(c *gin.Context) {
	var req SwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !stderrors.Is(err, io.EOF) {
		a.fail(c, errors.InvalidInput("body", err.Error()))
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	from := a.driver.Provider()
	target := a.driver.Next()
	if req.Provider != "" {
		p, err := maps.ParseProvider(req.Provider)
		if err != nil {
			a.metrics.RecordSwitch(c.Request.Context(), string(from), "unsupported", observability.StatusError)
			a.fail(c, errors.ProviderUnsupported(req.Provider))
			return
		}
		target = p
	}

	m, err := a.driver.SwitchTo(target)
	if err != nil {
		a.metrics.RecordSwitch(c.Request.Context(), string(from), string(target), observability.StatusError)
		a.fail(c, err)
		return
	}
	a.metrics.RecordSwitch(c.Request.Context(), string(from), string(target), observability.StatusOK)
	a.resetLocked()
	resp := a.mapResponseLocked(m)
	a.publish(EventMapSwitched, resp)
	server.RespondOK(c, resp)
}

func (a *API) addMarker(c *gin.Context) {
	var cfg maps.MarkerConfig
	if !a.bindJSON(c, &cfg) {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	start := time.Now()
	mk, err := a.driver.AddMarker(cfg)
	a.record(c, opMarkerCreate, start, err)
	if err != nil {
		a.fail(c, err)
		return
	}
	id := newHandleID()
	a.markers[id] = mk
	a.log.Debug("marker created", map[string]interface{}{logger.FieldEntityID: id})
	resp := EntityResponse{ID: id, Kind: kindMarker}
	a.publish(EventEntityCreated, resp)
	server.RespondCreated(c, resp)
}

func (a *API) setPosition(c *gin.Context) {
	id, ok := a.handleID(c)
	if !ok {
		return
	}
	var p maps.GeoPoint
	if !a.bindJSON(c, &p) {
		return
	}
	if err := p.Validate(); err != nil {
		a.fail(c, err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	mk, ok := a.markers[id]
	if !ok {
		a.fail(c, errors.NotFound("marker", id))
		return
	}
	start := time.Now()
	mk.SetPosition(p)
	a.record(c, opMarkerMove, start, nil)
	server.RespondOK(c, gin.H{"id": id, "position": p})
}

func (a *API) addPolyline(c *gin.Context) {
	var cfg maps.PolylineConfig
	if !a.bindJSON(c, &cfg) {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	start := time.Now()
	line, err := a.driver.AddPolyline(cfg)
	a.record(c, opPolylineCreate, start, err)
	if err != nil {
		a.fail(c, err)
		return
	}
	id := newHandleID()
	a.polylines[id] = line
	a.log.Debug("polyline created", map[string]interface{}{
		logger.FieldEntityID: id,
		logger.FieldPoints:   len(cfg.Path),
	})
	resp := EntityResponse{ID: id, Kind: kindPolyline}
	a.publish(EventEntityCreated, resp)
	server.RespondCreated(c, resp)
}

func (a *API) setOpacity(c *gin.Context) {
	id, ok := a.handleID(c)
	if !ok {
		return
	}
	var req OpacityRequest
	if !a.bindJSON(c, &req) {
		return
	}
	if req.Opacity == nil {
		a.fail(c, errors.MissingField("opacity"))
		return
	}
	if err := maps.ValidateOpacity(*req.Opacity); err != nil {
		a.fail(c, err)
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	e, ok := a.entityLocked(id)
	if !ok {
		a.fail(c, errUnknownEntity(id))
		return
	}
	start := time.Now()
	e.SetOpacity(*req.Opacity)
	a.record(c, opEntityOpacity, start, nil)
	server.RespondOK(c, gin.H{"id": id, "opacity": *req.Opacity})
}

// destroy answers 204 for unknown ids too, so repeated deletes succeed.
func (a *API) destroy(c *gin.Context) {
	id, ok := a.handleID(c)
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if e, ok := a.entityLocked(id); ok {
		kind := kindPolyline
		if _, isMarker := a.markers[id]; isMarker {
			kind = kindMarker
		}
		start := time.Now()
		e.Destroy()
		a.record(c, opEntityDestroy, start, nil)
		delete(a.markers, id)
		delete(a.polylines, id)
		a.log.Debug("entity destroyed", map[string]interface{}{logger.FieldEntityID: id})
		a.publish(EventEntityDestroyed, EntityResponse{ID: id, Kind: kind})
	}
	server.RespondNoContent(c)
}

func (a *API) mapResponseLocked(m maps.MapContainer) MapResponse {
	return MapResponse{
		Provider:  a.driver.Provider(),
		Node:      m.DisplayNode().NodeID(),
		Providers: maps.Providers(),
	}
}

// handleID reads the :id parameter. Handles are UUIDs; anything else is
// rejected before the table is consulted.
func (a *API) handleID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := validation.ValidateUUID("id", id); err != nil {
		a.fail(c, err)
		return "", false
	}
	return id, true
}

func (a *API) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		a.fail(c, errors.InvalidInput("body", err.Error()))
		return false
	}
	return true
}

// record must be called with a.mu held.
func (a *API) record(c *gin.Context, op string, start time.Time, err error) {
	status := observability.StatusOK
	if err != nil {
		status = observability.StatusError
	}
	a.metrics.RecordOperation(c.Request.Context(), op, string(a.driver.Provider()), status, time.Since(start))
}

func (a *API) fail(c *gin.Context, err error) {
	appErr := errors.Wrap(err)
	a.metrics.RecordError(c.Request.Context(), string(appErr.Code), componentName)
	server.RespondWithError(c, appErr)
}
