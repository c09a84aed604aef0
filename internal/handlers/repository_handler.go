package handlers

import (
	"Folio/internal/mapper"
	"Folio/internal/models"
	"Folio/internal/services"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type RepositoryHandler struct {
	rootService      services.RootService
	treeService      services.TreeService
	reconcileService services.ReconcileService
}

func NewRepositoryHandler(rootService services.RootService, treeService services.TreeService, reconcileService services.ReconcileService) *RepositoryHandler {
	return &RepositoryHandler{rootService: rootService, treeService: treeService, reconcileService: reconcileService}
}

func scopeFromQuery(c *fiber.Ctx) models.Scope {
	return models.NewScope(c.Query("areaId"), c.Query("procesoId"), c.Query("subprocesoId"))
}

func (h *RepositoryHandler) GetRoot(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	root, err := h.rootService.ResolveRoot(c.UserContext(), principal, scopeFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(mapper.ToFolderDTO(root))
}

func (h *RepositoryHandler) GetTree(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	tree, err := h.treeService.Snapshot(c.UserContext(), principal, scopeFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(mapper.ToTreeDTO(tree))
}

func (h *RepositoryHandler) ListDuplicates(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	groups, err := h.reconcileService.Scan(c.UserContext(), principal)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(groups)
}

func (h *RepositoryHandler) Reconcile(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	var req struct {
		All          bool   `json:"all"`
		AreaID       string `json:"areaId"`
		ProcesoID    string `json:"procesoId"`
		SubprocesoID string `json:"subprocesoId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid input"})
	}

	var report *services.Report
	if req.All {
		report, err = h.reconcileService.ReconcileAll(c.UserContext(), principal)
	} else {
		report, err = h.reconcileService.ReconcileScope(c.UserContext(), principal, models.NewScope(req.AreaID, req.ProcesoID, req.SubprocesoID))
	}
	if err != nil {
		return c.Status(errorStatus(err)).JSON(map[string]interface{}{
			"success": false,
			"message": err.Error(),
			"error":   err.Error(),
			"report":  report,
		})
	}
	message := "no duplicate roots found"
	if report.GroupsFound > 0 {
		message = "duplicate roots reconciled"
	}
	return c.JSON(map[string]interface{}{
		"success": true,
		"message": message,
		"report":  report,
	})
}
