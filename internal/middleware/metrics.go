package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Guptsonu22/task-management-api/internal/metrics"
)

// Metrics records request count and latency per route. The route template
// (e.g. /api/tasks/:id) is used instead of the raw path to keep label
// cardinality bounded.
func Metrics(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		collector.RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
