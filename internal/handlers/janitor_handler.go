package handlers

import (
	"Folio/internal/authz"
	"Folio/internal/services"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type JanitorRunner interface {
	ForceStartCycle() error
	LatestReport() *services.JanitorReport
}

type JanitorHandler struct {
	janitor JanitorRunner
}

func NewJanitorHandler(janitor *services.Janitor) *JanitorHandler {
	return &JanitorHandler{janitor: janitor}
}

func (h *JanitorHandler) ForceCycle(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := authz.Authorize(principal, authz.ActionReconcile); err != nil {
		return writeError(c, err)
	}
	if err := h.janitor.ForceStartCycle(); err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{})
}

func (h *JanitorHandler) LatestReport(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := authz.Authorize(principal, authz.ActionReconcile); err != nil {
		return writeError(c, err)
	}
	report := h.janitor.LatestReport()
	if report == nil {
		return c.SendStatus(http.StatusNoContent)
	}
	return c.JSON(report)
}
