package handlers

import (
	"Folio/internal/mapper"
	"Folio/internal/services"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type FolderHandler struct {
	service services.FolderService
}

func NewFolderHandler(service services.FolderService) *FolderHandler {
	return &FolderHandler{service: service}
}

func (h *FolderHandler) CreateFolder(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	var req struct {
		ParentID string `json:"parentId"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid input"})
	}
	folder, err := h.service.CreateFolder(c.UserContext(), principal, req.ParentID, req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToFolderDTO(folder))
}

func (h *FolderHandler) GetFolder(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	folder, err := h.service.GetFolder(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(mapper.ToFolderDTO(folder))
}

func (h *FolderHandler) RenameFolder(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "invalid input"})
	}
	folder, err := h.service.RenameFolder(c.UserContext(), principal, c.Params("id"), req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(mapper.ToFolderDTO(folder))
}

func (h *FolderHandler) DeleteFolder(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.DeleteFolder(c.UserContext(), principal, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
