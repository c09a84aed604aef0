package handlers

import (
	"Folio/internal/domain"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrFolderNotEmpty),
		errors.Is(err, domain.ErrProtectedRoot),
		errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrReconcileInProgress),
		errors.Is(err, domain.ErrCycleInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(map[string]interface{}{"error": err.Error()})
}
