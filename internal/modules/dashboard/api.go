package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/userdash/internal/handlers"
)

// ProfileAPI returns the mapped profile as JSON.
func (h *Handler) ProfileAPI(c echo.Context) error {
	var req SubjectRequest
	if err := c.Bind(&req); err != nil || c.Validate(&req) != nil {
		return c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Code: "invalid_subject", Message: invalidSubjectMessage})
	}

	profile, err := h.fetcher.FetchUserProfile(c.Request().Context(), req.ID)
	if err != nil {
		return handlers.UpstreamError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// ActivitiesAPI returns the mapped activities as JSON.
func (h *Handler) ActivitiesAPI(c echo.Context) error {
	var req SubjectRequest
	if err := c.Bind(&req); err != nil || c.Validate(&req) != nil {
		return c.JSON(http.StatusBadRequest, handlers.ErrorResponse{Code: "invalid_subject", Message: invalidSubjectMessage})
	}

	activities, err := h.fetcher.FetchUserActivities(c.Request().Context(), req.ID)
	if err != nil {
		return handlers.UpstreamError(c, err)
	}
	return c.JSON(http.StatusOK, activities)
}

// PageStateAPI returns a page instance's view state as JSON.
func (h *Handler) PageStateAPI(c echo.Context) error {
	page, ok := h.pages.Get(c.Param("page"))
	if !ok {
		return c.JSON(http.StatusNotFound, handlers.ErrorResponse{Code: "not_found", Message: "dashboard page not found"})
	}
	return c.JSON(http.StatusOK, page.Controller.Snapshot())
}
