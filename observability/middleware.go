package observability

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestMetrics records every request against its route pattern.
// Unmatched requests are recorded under "unmatched".
func RequestMetrics(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		m.RecordRequestStart(ctx)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordRequestEnd(ctx, c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
