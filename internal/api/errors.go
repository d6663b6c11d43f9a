// Package api exposes the CRUD facades over HTTP. Handlers parse and
// validate the request, call the matching repository operation and map its
// error class to a status code; no SQL or business rules live here.
package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"webstore-service/internal/repository"
	"webstore-service/internal/store"
)

// errorResponse maps a facade error class to an HTTP response.
func errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(404, map[string]string{"error": "not found"})
	case errors.Is(err, repository.ErrAdminRequired):
		return c.JSON(403, map[string]string{"error": "admin access required"})
	case errors.Is(err, store.ErrDuplicate):
		return c.JSON(409, map[string]string{"error": "already exists"})
	case errors.Is(err, store.ErrRowReferenced):
		return c.JSON(409, map[string]string{"error": "record is still referenced"})
	case errors.Is(err, store.ErrRowMissing):
		return c.JSON(400, map[string]string{"error": "referenced record does not exist"})
	case errors.Is(err, store.ErrInvalidInput):
		return c.JSON(400, map[string]string{"error": err.Error()})
	default:
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
}
