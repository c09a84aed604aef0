package routers

import (
	"Folio/cmd"
	"github.com/gofiber/fiber/v2"
)

func SetupJanitorRouter(router fiber.Router, server *cmd.Server) {
	janitorHandler := server.JanitorHandler
	router.Post("/janitor/cycle", janitorHandler.ForceCycle)
	router.Get("/janitor/report", janitorHandler.LatestReport)
}
