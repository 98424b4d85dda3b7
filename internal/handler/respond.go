package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	apperrors "taskboard/internal/errors"
)

// respondError writes the wire error body for any failure, whether it is an
// already-shaped HTTP error (validation batches) or a domain error kind.
func respondError(c echo.Context, err error) error {
	var httpErr *apperrors.HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(httpErr.StatusCode, httpErr.Body)
}
