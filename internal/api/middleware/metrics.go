package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/siaksi/siaksi-api/internal/metrics"
)

// CountRequests records one observation per handled request, labelled with
// the route template rather than the raw path to keep cardinality bounded.
func CountRequests() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequests.WithLabelValues(
			ctx.Request.Method,
			path,
			strconv.Itoa(ctx.Writer.Status()),
		).Inc()
	}
}
