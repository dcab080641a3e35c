package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-DevTinder/src/controllers"
)

// Register mounts every API route on app.
func Register(app fiber.Router, h *controllers.Controller, protect, authLimit fiber.Handler) {
	AuthRoutes(app, h, authLimit)
	ProfileRoutes(app, h, protect)
	ConnectionRoutes(app, h, protect)
	UserRoutes(app, h, protect)
	NotificationRoutes(app, h, protect)
}
