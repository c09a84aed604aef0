package routers

import (
	"Folio/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupFileRouter(router fiber.Router, server *cmd.Server) {
	fileHandler := server.FileHandler
	router.Post("/folders/:id/files", fileHandler.UploadFile)
	router.Get("/folders/:id/files", fileHandler.ListFiles)
	router.Get("/files/:id", fileHandler.GetFile)
	router.Get("/files/:id/download", fileHandler.DownloadFile)
	router.Delete("/files/:id", fileHandler.DeleteFile)
}
