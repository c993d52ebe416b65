package sse

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/mapkit/component"
)

var _ component.Component = (*Component)(nil)

// Component runs a Hub under the component registry.
type Component struct {
	hub *Hub
	wg  sync.WaitGroup
}

// NewComponent wraps hub.
func NewComponent(hub *Hub) *Component {
	return &Component{hub: hub}
}

// Hub returns the wrapped hub.
func (c *Component) Hub() *Hub { return c.hub }

// Name implements component.Component.
func (c *Component) Name() string { return "sse" }

// Start runs the hub loop in the background.
func (c *Component) Start(context.Context) error {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.hub.Run()
	}()
	return nil
}

// Stop stops the hub and waits for its loop to exit.
func (c *Component) Stop(context.Context) error {
	c.hub.Stop()
	c.wg.Wait()
	return nil
}

// Health reports the connected client count.
func (c *Component) Health(context.Context) component.Health {
	status := component.StatusHealthy
	select {
	case <-c.hub.Done():
		status = component.StatusUnhealthy
	default:
	}
	return component.Health{
		Name:    c.Name(),
		Status:  status,
		Message: fmt.Sprintf("%d clients connected", c.hub.ClientCount()),
	}
}
