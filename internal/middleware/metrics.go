package middleware

import (
	"strconv"
	"time"

	"github.com/bagoloot/bagoloot/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency labelled by route template,
// so /api/child/1 and /api/child/2 share one series.
func Metrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.HTTPRequests.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(ctx.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
