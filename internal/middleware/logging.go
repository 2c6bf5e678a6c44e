package middleware

import (
	"log/slog"
	"time"

	"github.com/bagoloot/bagoloot/internal/types"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request once the handler chain returns.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		attrs := []any{
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", ctx.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", ctx.ClientIP(),
		}

		if user, ok := ctx.Get(types.ContextUserKey); ok {
			if u, ok := user.(AuthenticatedUser); ok {
				attrs = append(attrs, "username", u.Username)
			}
		}

		if len(ctx.Errors) > 0 {
			attrs = append(attrs, "error", ctx.Errors.String())
		}

		switch status := ctx.Writer.Status(); {
		case status >= 500:
			slog.Error("Request failed", attrs...)
		case status >= 400:
			slog.Warn("Request rejected", attrs...)
		default:
			slog.Info("Request completed", attrs...)
		}
	}
}
