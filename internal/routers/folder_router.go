package routers

import (
	"Folio/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupFolderRouter(router fiber.Router, server *cmd.Server) {
	folderHandler := server.FolderHandler
	router.Post("/folders", folderHandler.CreateFolder)
	router.Get("/folders/:id", folderHandler.GetFolder)
	router.Patch("/folders/:id", folderHandler.RenameFolder)
	router.Delete("/folders/:id", folderHandler.DeleteFolder)
}
