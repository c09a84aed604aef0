package routers

import (
	"Folio/cmd"
	"Folio/internal/handlers"
	"Folio/internal/storage"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, server *cmd.Server) {
	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})
	if diskStore, ok := server.BlobStore.(*storage.DiskStore); ok {
		app.Static(server.Configuration.Storage.PublicURLPath(), diskStore.Root())
	}

	api := app.Group("", handlers.AuthMiddleware(server.TokenVerifier))
	SetupRepositoryRouter(api, server)
	SetupFolderRouter(api, server)
	SetupFileRouter(api, server)
	SetupJanitorRouter(api, server)
}
