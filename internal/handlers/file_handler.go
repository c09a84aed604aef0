package handlers

import (
	"Folio/internal/mapper"
	"Folio/internal/services"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type FileHandler struct {
	service services.FileService
}

func NewFileHandler(service services.FileService) *FileHandler {
	return &FileHandler{service: service}
}

// UploadFile stores the multipart "file" field in the folder. An optional
// "name" field overrides the uploaded file name.
func (h *FileHandler) UploadFile(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "file is required"})
	}
	name := c.FormValue("name", fileHeader.Filename)
	body, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(map[string]interface{}{"error": "could not read file"})
	}
	defer body.Close()

	contentType := fileHeader.Header.Get(fiber.HeaderContentType)
	file, err := h.service.UploadFile(c.UserContext(), principal, c.Params("id"), name, contentType, fileHeader.Size, body)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToFileDTO(file))
}

func (h *FileHandler) ListFiles(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	files, err := h.service.ListFiles(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(mapper.ToFileDTOs(files))
}

func (h *FileHandler) GetFile(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	file, err := h.service.GetFile(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(mapper.ToFileDTO(file))
}

func (h *FileHandler) DownloadFile(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	url, err := h.service.DownloadURL(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Redirect(url, http.StatusFound)
}

func (h *FileHandler) DeleteFile(c *fiber.Ctx) error {
	principal, err := principalFrom(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.DeleteFile(c.UserContext(), principal, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
