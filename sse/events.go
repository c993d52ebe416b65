package sse

import (
	"fmt"
	"io"
)

// EventTypeConnected is sent once when a client connects.
const EventTypeConnected = "connected"

// Event is one server-sent event. Data is a JSON document.
type Event struct {
	Type string
	Data []byte
}

// WriteTo writes e in the text/event-stream format.
func (e Event) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, e.Data)
	return int64(n), err
}

// Publisher publishes events. The payload is encoded as JSON.
type Publisher interface {
	Publish(eventType string, payload any)
}
