package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-DevTinder/src/middleware"
	"github.com/theleywin/Backend-DevTinder/src/services"
)

// GetReceivedRequests returns the pending requests addressed to the user
func (h *Controller) GetReceivedRequests(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	reqs, err := h.Aggregator.ListReceivedPending(ctx, middleware.CurrentUser(c).ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(reqs)
}

// GetSentRequests returns the pending requests the user sent
func (h *Controller) GetSentRequests(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	reqs, err := h.Aggregator.ListSentPending(ctx, middleware.CurrentUser(c).ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(reqs)
}

// GetConnections returns every user connected to the authenticated user
func (h *Controller) GetConnections(c *fiber.Ctx) error {
	ctx, cancel := h.context(c)
	defer cancel()

	users, err := h.Aggregator.ListAcceptedConnections(ctx, middleware.CurrentUser(c).ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// GetFeed returns a page of users the authenticated user has no request with
func (h *Controller) GetFeed(c *fiber.Ctx) error {
	page, size := services.NormalizePage(c.QueryInt("page", 1), c.QueryInt("limit", services.DefaultPageSize))

	ctx, cancel := h.context(c)
	defer cancel()

	users, err := h.Feed.ComputeFeed(ctx, middleware.CurrentUser(c).ID, page, size)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set("X-Page", strconv.Itoa(page))
	c.Set("X-Limit", strconv.Itoa(size))
	return c.Status(fiber.StatusOK).JSON(users)
}
