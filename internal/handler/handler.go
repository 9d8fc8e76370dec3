package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storehub/internal/errors"
)

// respondError maps a domain error to its HTTP shape. Unexpected errors are
// logged server-side and surfaced as a generic internal error.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
