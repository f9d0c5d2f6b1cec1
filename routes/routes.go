package routes

import (
	"ponewine/controllers/ponewine"
	"ponewine/middlewares"
	"ponewine/services"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, reporter *services.ReportClient) {
	app.Use(middlewares.RequestLogger())

	api := app.Group("/api/v1")
	api.Post("/pone-wine/bet", ponewine.PlaceBet(reporter))
}
