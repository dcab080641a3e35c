package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/lib"
	"github.com/theleywin/Backend-DevTinder/src/middleware"
)

// GetUserNotifications returns the user's notifications, newest first
func (h *Controller) GetUserNotifications(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	notes, err := h.Notifications.List(ctx, middleware.CurrentUser(c).ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(notes)
}

// MarkNotificationAsRead marks one of the user's notifications as read
func (h *Controller) MarkNotificationAsRead(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	n, err := h.Notifications.MarkRead(ctx, c.Params("id"), middleware.CurrentUser(c).ID)
	if err != nil {
		return h.fail(c, err, on(common.ErrNotFound, "Notification not found"))
	}
	return c.Status(fiber.StatusOK).JSON(n)
}

// DeleteNotification deletes one of the user's notifications
func (h *Controller) DeleteNotification(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	if err := h.Notifications.Delete(ctx, c.Params("id"), middleware.CurrentUser(c).ID); err != nil {
		return h.fail(c, err, on(common.ErrNotFound, "Notification not found"))
	}
	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Notification deleted successfully"))
}
