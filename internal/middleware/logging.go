package middleware

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rukibhamz/erpsolution-sub001/internal/platform/metrics"
)

// StructuredLoggingMiddleware injects a request-scoped logger into the request
// context and records the latency histogram on completion. An inbound
// X-Request-ID is honored so traces can span callers; otherwise one is minted.
func StructuredLoggingMiddleware(baseLogger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)

		requestLogger := baseLogger.With(
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)
		ctx := context.WithValue(c.Request.Context(), loggerCtxKey, requestLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).
			Observe(latency.Seconds())

		logFn := requestLogger.Info
		switch {
		case status >= 500:
			logFn = requestLogger.Error
		case status >= 400:
			logFn = requestLogger.Warn
		}
		logFn("Request completed",
			slog.Int("status", status),
			slog.Duration("latency", latency),
		)
	}
}
