package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-DevTinder/src/controllers"
)

// ConnectionRoutes sets up sending, reviewing and inspecting connection requests
func ConnectionRoutes(app fiber.Router, h *controllers.Controller, protect fiber.Handler) {
	request := app.Group("/request", protect)

	request.Post("/send/:toUserId", h.SendConnectionRequest)
	request.Post("/review/:status/:requestId", h.ReviewConnectionRequest)
	request.Get("/status/:userId", h.GetConnectionStatus)
}
