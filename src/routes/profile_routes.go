package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-DevTinder/src/controllers"
)

// ProfileRoutes sets up the authenticated user's own profile routes
func ProfileRoutes(app fiber.Router, h *controllers.Controller, protect fiber.Handler) {
	profile := app.Group("/profile", protect)

	profile.Get("/view", h.ViewProfile)
	profile.Patch("/edit", h.EditProfile)
	profile.Put("/edit", h.EditProfile)
	profile.Delete("/delete", h.DeleteProfile)
}
