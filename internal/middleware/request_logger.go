package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"flyerhub-backend/internal/logging"
	"flyerhub-backend/internal/metrics"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id, attaches a request-scoped
// zerolog logger to its context, and logs the outcome by status class.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = logging.GenerateRequestID()
		}
		c.Header(RequestIDHeader, rid)

		l := logging.With().
			Str("request_id", rid).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("remote_ip", c.ClientIP()).
			Logger()

		ctx := logging.ContextWithRequestID(c.Request.Context(), rid)
		c.Request = c.Request.WithContext(logging.IntoContext(ctx, l))

		start := time.Now()
		c.Next()
		dur := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(dur.Seconds())

		switch {
		case status >= 500:
			l.Error().Int("status", status).Dur("duration", dur).Str("error", c.Errors.String()).Msg("request completed")
		case status >= 400:
			l.Warn().Int("status", status).Dur("duration", dur).Msg("request completed")
		default:
			l.Info().Int("status", status).Dur("duration", dur).Int("bytes", c.Writer.Size()).Msg("request completed")
		}
	}
}
