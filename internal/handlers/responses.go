package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/userdash/internal/domain"
)

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// UpstreamError maps a data access error to an API response. Upstream 404s
// stay 404; everything else is a bad gateway.
func UpstreamError(c echo.Context, err error) error {
	var ff *domain.FetchFailure
	switch {
	case domain.IsNotFound(err):
		return c.JSON(http.StatusNotFound, ErrorResponse{Code: "not_found", Message: err.Error()})
	case errors.As(err, &ff):
		return c.JSON(http.StatusBadGateway, ErrorResponse{Code: "upstream_status", Message: err.Error()})
	case errors.Is(err, domain.ErrMalformedResponse), errors.Is(err, domain.ErrDuplicateActivity):
		return c.JSON(http.StatusBadGateway, ErrorResponse{Code: "malformed_upstream", Message: err.Error()})
	default:
		return c.JSON(http.StatusBadGateway, ErrorResponse{Code: "upstream_unavailable", Message: "upstream request failed"})
	}
}
