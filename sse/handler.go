package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// KeepAliveInterval is the period of comment lines sent on idle streams.
// It must stay below proxy idle timeouts.
var KeepAliveInterval = 30 * time.Second

// ConnectedEvent is the payload of the first event on every stream.
type ConnectedEvent struct {
	ClientID string `json:"client_id"`
}

// Handler serves an event stream per request with a fresh client id.
func Handler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ServeSSE(hub, c.Writer, c.Request, uuid.NewString())
	}
}

// ServeSSE streams hub events to w until the request ends or the hub stops.
func ServeSSE(hub *Hub, w http.ResponseWriter, r *http.Request, clientID string) {
	log := hub.log
	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error("Streaming not supported", map[string]interface{}{"client_id": clientID})
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	// Streams outlive the server's write timeout.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		log.Debug("Could not clear write deadline", map[string]interface{}{
			"client_id": clientID,
			"error":     err.Error(),
		})
	}

	client := NewClient(clientID)
	if !hub.Register(client) {
		http.Error(w, "event stream closed", http.StatusServiceUnavailable)
		return
	}
	defer hub.Unregister(client)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	data, _ := json.Marshal(ConnectedEvent{ClientID: clientID})
	if _, err := (Event{Type: EventTypeConnected, Data: data}).WriteTo(w); err != nil {
		return
	}
	flusher.Flush()
	log.Debug("Client connected", map[string]interface{}{
		"client_id":   clientID,
		"remote_addr": r.RemoteAddr,
	})

	keepAlive := time.NewTicker(KeepAliveInterval)
	defer keepAlive.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			log.Debug("Client disconnected", map[string]interface{}{
				"client_id": clientID,
				"reason":    ctx.Err().Error(),
			})
			return

		case e, ok := <-client.Events():
			if !ok {
				return
			}
			if _, err := e.WriteTo(w); err != nil {
				return
			}
			flusher.Flush()

		case <-keepAlive.C:
			if _, err := fmt.Fprintf(w, ": keepalive %d\n\n", time.Now().Unix()); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
