package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/lib"
	"github.com/theleywin/Backend-DevTinder/src/logging"
	"github.com/theleywin/Backend-DevTinder/src/services"
)

type Deps struct {
	Users         *services.UserService
	Ledger        *services.Ledger
	Aggregator    *services.Aggregator
	Feed          *services.FeedResolver
	Notifications *services.NotificationService
	Log           logging.Logger

	RequestTimeout time.Duration
	TokenTTL       time.Duration
	SecureCookie   bool
}

// Controller holds the HTTP handlers. Each handler derives a deadline
// bound context for the services it calls.
type Controller struct {
	Deps
	log logging.Logger
}

func New(d Deps) *Controller {
	return &Controller{Deps: d, log: d.Log.With("module", "http")}
}

func (h *Controller) context(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), h.RequestTimeout)
}

type errMessage struct {
	target error
	msg    string
}

func on(target error, msg string) errMessage {
	return errMessage{target: target, msg: msg}
}

// StatusFor maps service errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, common.ErrInvalidOperation),
		errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrConflict):
		return fiber.StatusBadRequest
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

// fail writes the error response. Messages are picked from overrides first;
// validation errors fall back to their detail, internal errors are logged
// and never echoed.
func (h *Controller) fail(c *fiber.Ctx, err error, overrides ...errMessage) error {
	status := StatusFor(err)
	if status == fiber.StatusInternalServerError {
		h.log.Error(c.UserContext(), "request failed", "path", c.Path(), "error", err)
		return c.Status(status).JSON(lib.MessageResponse("Server error"))
	}

	for _, o := range overrides {
		if errors.Is(err, o.target) {
			return c.Status(status).JSON(lib.MessageResponse(o.msg))
		}
	}

	msg := err.Error()
	switch {
	case errors.Is(err, common.ErrValidation):
		msg = strings.TrimPrefix(msg, common.ErrValidation.Error()+": ")
	case errors.Is(err, common.ErrNotFound):
		msg = "Not found"
	case errors.Is(err, common.ErrConflict):
		msg = "Already exists"
	case errors.Is(err, common.ErrUnauthorized):
		msg = "Unauthorized"
	}
	return c.Status(status).JSON(lib.MessageResponse(msg))
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid data"))
}
