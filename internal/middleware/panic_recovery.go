package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"financial-tracking/internal/errors"

	"github.com/labstack/echo/v4"
)

// PanicRecovery converts handler panics into a 500 with the shared error
// envelope instead of tearing down the connection.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					writePanicResponse(c, r)
				}
			}()
			return next(c)
		}
	}
}

func writePanicResponse(c echo.Context, r interface{}) {
	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	slog.Error("panic recovered",
		"trace_id", traceID,
		"panic", fmt.Sprintf("%v", r),
		"stack", string(debug.Stack()),
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
	)

	resp := errors.NewErrorResponse(errors.SystemInternalError, traceID)
	if err := c.JSON(http.StatusInternalServerError, resp); err != nil {
		slog.Error("failed to write panic response",
			"trace_id", traceID,
			"error", err.Error(),
		)
	}
}
