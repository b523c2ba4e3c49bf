package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// setupErrorHandling installs an error handler that logs unexpected errors
// with a stack trace and leaves echo.HTTPError responses to echo.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		slog.Error("Internal Server Error (Unhandled)",
			"error", err.Error(),
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"stack_trace", string(debug.Stack()),
		)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(http.StatusInternalServerError)
			return
		}
		_ = c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
