package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/studyhours-backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"
)

// RequestIDs tags every request with a request id and a trace id and echoes
// both back. Caller-supplied headers win; the trace id otherwise comes from
// the active span.
func RequestIDs() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := headerOr(c, headerRequestID, uuid.NewString)
		traceID := headerOr(c, headerTraceID, func() string {
			if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
				return sc.TraceID().String()
			}
			return uuid.NewString()
		})
		c.Request = c.Request.WithContext(ctxutil.WithTrace(c.Request.Context(), traceID, reqID))
		c.Header(headerTraceID, traceID)
		c.Header(headerRequestID, reqID)
		c.Next()
	}
}

func headerOr(c *gin.Context, name string, fallback func() string) string {
	if v := strings.TrimSpace(c.GetHeader(name)); v != "" {
		return v
	}
	return fallback()
}
