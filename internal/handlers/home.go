package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DefaultSubject is the user shown when no identifier is given.
const DefaultSubject = "1"

// HomeHandler handles requests for the site root.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeGet sends the visitor to the default user's dashboard.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/users/"+DefaultSubject)
}

// HealthGet reports liveness.
func HealthGet(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
