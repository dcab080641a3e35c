package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/lib"
	"github.com/theleywin/Backend-DevTinder/src/middleware"
	"github.com/theleywin/Backend-DevTinder/src/models"
)

// ViewProfile returns the authenticated user's own profile
func (h *Controller) ViewProfile(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	user, err := h.Users.Profile(ctx, middleware.CurrentUser(c).ID)
	if err != nil {
		return h.fail(c, err, on(common.ErrNotFound, "User not found"))
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// EditProfile applies a partial update to the authenticated user
func (h *Controller) EditProfile(c *fiber.Ctx) error {
	var patch models.ProfilePatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c)
	}

	ctx, cancel := h.context(c)
	defer cancel()

	user, err := h.Users.UpdateProfile(ctx, middleware.CurrentUser(c).ID, patch)
	if err != nil {
		return h.fail(c, err,
			on(common.ErrNotFound, "User not found"),
			on(common.ErrConflict, "Email already in use"),
		)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

// DeleteProfile deletes the authenticated user and everything linked to them
func (h *Controller) DeleteProfile(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	if err := h.Users.Delete(ctx, middleware.CurrentUser(c).ID); err != nil {
		return h.fail(c, err, on(common.ErrNotFound, "User not found"))
	}
	c.Cookie(h.tokenCookie("", time.Unix(0, 0)))
	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("User deleted successfully"))
}
