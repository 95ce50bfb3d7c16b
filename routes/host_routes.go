package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kamande0/meeting_desk/handlers"
	"github.com/kamande0/meeting_desk/middleware"
)

func HostRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Any authenticated party can browse a host's open slots.
	api.Get("/hosts/:hostId/slots", middleware.Protected(), handlers.GetHostSlots)

	host := api.Group("/host", middleware.Protected(), middleware.HostRequired())
	host.Get("/calendar", handlers.GetMyCalendar)
	host.Put("/calendar", handlers.ReplaceCalendar)
	host.Get("/stats", handlers.GetHostStats)
}
