package handlers

import (
	"net/http"

	"financial-tracking/internal/errors"

	"github.com/labstack/echo/v4"
)

// TraceIDContextKey is the context key the request-id middleware stores the
// trace ID under. Declared here too so handlers have no import on middleware.
const TraceIDContextKey = "trace_id"

// SuccessResponse is the envelope for 2xx payloads.
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is an alias for the shared error envelope.
type ErrorResponse = errors.ErrorResponse

func getTraceID(c echo.Context) string {
	traceID, _ := c.Get(TraceIDContextKey).(string)
	return traceID
}

// SendError writes the envelope for a known error code. Use it for every
// client-caused failure (validation, not-found, conflicts, business rules);
// the HTTP status comes from the code's catalog entry.
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	resp := errors.NewErrorResponse(code, getTraceID(c), opts...)
	return c.JSON(resp.GetHTTPStatus(), resp)
}

// SendSystemError writes a generic 500 envelope. The underlying error stays
// server-side; nothing about it reaches the client beyond the trace ID.
func SendSystemError(c echo.Context, err error) error {
	resp, _ := errors.WrapSystemError(err, getTraceID(c))
	return c.JSON(http.StatusInternalServerError, resp)
}
