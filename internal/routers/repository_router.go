package routers

import (
	"Folio/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupRepositoryRouter(router fiber.Router, server *cmd.Server) {
	repositoryHandler := server.RepositoryHandler
	router.Get("/repository/root", repositoryHandler.GetRoot)
	router.Get("/repository/tree", repositoryHandler.GetTree)
	router.Get("/repository/duplicates", repositoryHandler.ListDuplicates)
	router.Post("/repository/reconcile", repositoryHandler.Reconcile)
}
