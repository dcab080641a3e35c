package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-DevTinder/src/controllers"
)

// AuthRoutes sets up signup, login and logout; signup and login go through the rate limiter
func AuthRoutes(app fiber.Router, h *controllers.Controller, limit fiber.Handler) {
	app.Post("/signup", limit, h.Signup)
	app.Post("/login", limit, h.Login)
	app.Post("/logout", h.Logout)
}
