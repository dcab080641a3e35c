package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/lib"
	"github.com/theleywin/Backend-DevTinder/src/middleware"
)

// SendConnectionRequest sends a request from the authenticated user to :toUserId
func (h *Controller) SendConnectionRequest(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	req, err := h.Ledger.SendRequest(ctx, middleware.CurrentUser(c).ID, c.Params("toUserId"))
	if err != nil {
		return h.fail(c, err,
			on(common.ErrInvalidOperation, "You can't send a connection request to yourself"),
			on(common.ErrNotFound, "User not found"),
			on(common.ErrConflict, "A connection request already exists between these users"),
		)
	}

	return c.Status(fiber.StatusCreated).JSON(lib.DataResponse("Connection request sent successfully", req))
}

// ReviewConnectionRequest accepts or rejects a pending request addressed to
// the authenticated user
func (h *Controller) ReviewConnectionRequest(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	req, err := h.Ledger.Respond(ctx, c.Params("requestId"), middleware.CurrentUser(c).ID, c.Params("status"))
	if err != nil {
		return h.fail(c, err,
			on(common.ErrInvalidOperation, "Status must be accepted or rejected"),
			on(common.ErrNotFound, "Connection request not found"),
		)
	}

	return c.Status(fiber.StatusOK).JSON(lib.DataResponse("Connection request "+string(req.Status), req))
}

// GetConnectionStatus reports how the authenticated user relates to :userId
func (h *Controller) GetConnectionStatus(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	rel, err := h.Aggregator.Status(ctx, middleware.CurrentUser(c).ID, c.Params("userId"))
	if err != nil {
		return h.fail(c, err,
			on(common.ErrInvalidOperation, "Cannot check the connection status with yourself"),
			on(common.ErrNotFound, "User not found"),
		)
	}
	return c.Status(fiber.StatusOK).JSON(rel)
}
