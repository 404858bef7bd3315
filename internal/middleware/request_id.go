package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TraceIDHeader carries the trace ID on requests and responses.
const TraceIDHeader = "X-Trace-ID"

// TraceIDContextKey is where the trace ID lives in the echo context.
const TraceIDContextKey = "trace_id"

// RequestID attaches a trace ID to every request. An ID supplied by the
// caller in X-Trace-ID is honored so traces can span services; otherwise
// a fresh UUID is minted. The ID is stored in the context for the error
// envelope and echoed back in the response header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.New().String()
			}

			c.Set(TraceIDContextKey, traceID)
			c.Response().Header().Set(TraceIDHeader, traceID)
			return next(c)
		}
	}
}

// GetTraceID returns the trace ID for the request, or "" when the
// RequestID middleware did not run.
func GetTraceID(c echo.Context) string {
	traceID, _ := c.Get(TraceIDContextKey).(string)
	return traceID
}
