package server

import (
	"Folio/cmd"
	"Folio/internal/routers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func NewApp(server *cmd.Server) *fiber.App {
	cfg := server.Configuration
	app := fiber.New(fiber.Config{
		BodyLimit:   cfg.Server.RequestConfig.SizeLimit * 1024 * 1024,
		Concurrency: cfg.Server.Concurrency * 1024,
		AppName:     "Folio",
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Output: server.LogService.Log.Writer(),
	}))
	if cfg.Server.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.Server.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		}))
	}

	routers.SetupRoutes(app, server)
	return app
}
