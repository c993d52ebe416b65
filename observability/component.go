package observability

import (
	"context"
	"fmt"
	"sync/atomic"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/mapkit/component"
)

const componentName = "observability"

var _ component.Component = (*Component)(nil)

// Component flushes and shuts down a meter provider when the host stops.
type Component struct {
	mp      *sdkmetric.MeterProvider
	stopped atomic.Bool
}

// NewComponent wraps mp.
func NewComponent(mp *sdkmetric.MeterProvider) *Component {
	return &Component{mp: mp}
}

// Name implements component.Component.
func (c *Component) Name() string { return componentName }

// Start implements component.Component. The provider is live once built.
func (c *Component) Start(context.Context) error { return nil }

// Stop flushes pending metrics and shuts the provider down.
func (c *Component) Stop(ctx context.Context) error {
	c.stopped.Store(true)
	if err := c.mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}
	return nil
}

// Health implements component.Component.
func (c *Component) Health(context.Context) component.Health {
	if c.stopped.Load() {
		return component.Health{Name: componentName, Status: component.StatusUnhealthy, Message: "shut down"}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}
