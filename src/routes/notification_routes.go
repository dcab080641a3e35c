package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-DevTinder/src/controllers"
)

// NotificationRoutes sets up notification-related routes for listing, marking as read, and deleting notifications
func NotificationRoutes(app fiber.Router, h *controllers.Controller, protect fiber.Handler) {
	notification := app.Group("/notifications", protect)

	notification.Get("/", h.GetUserNotifications)
	notification.Put("/:id/read", h.MarkNotificationAsRead)
	notification.Delete("/:id", h.DeleteNotification)
}
