package endpoint

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

const mb = 1 << 20

// Metrics returns a handler reporting goroutine count, heap and GC figures
// of the process. Map metrics are exported through OTLP, not here.
func Metrics(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)

		c.JSON(http.StatusOK, gin.H{
			"service":    serviceName,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"goroutines": runtime.NumGoroutine(),
			"memory": gin.H{
				"heap_alloc_mb":  ms.HeapAlloc / mb,
				"total_alloc_mb": ms.TotalAlloc / mb,
				"sys_mb":         ms.Sys / mb,
				"heap_objects":   ms.HeapObjects,
			},
			"gc": gin.H{
				"runs":          ms.NumGC,
				"pause_total_s": time.Duration(ms.PauseTotalNs).Seconds(),
			},
		})
	}
}
