package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-DevTinder/src/controllers"
)

// UserRoutes sets up the request listings, the connection list and the feed
func UserRoutes(app fiber.Router, h *controllers.Controller, protect fiber.Handler) {
	user := app.Group("/user", protect)

	user.Get("/requests/received", h.GetReceivedRequests)
	user.Get("/requests/sent", h.GetSentRequests)
	user.Get("/connections", h.GetConnections)

	app.Get("/feed", protect, h.GetFeed)
}
