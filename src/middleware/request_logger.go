package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-DevTinder/src/logging"
)

// RequestContext copies the id set by fiber's requestid middleware into the
// user context, so log lines written further down carry it. Register it
// after requestid.New().
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals("requestid").(string); ok && id != "" {
			c.SetUserContext(logging.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}

// RequestLogger writes one line per request once the handler chain is done.
func RequestLogger(log logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		args := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.IP(),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error(c.UserContext(), "request failed", args...)
		case status >= fiber.StatusBadRequest:
			log.Warn(c.UserContext(), "request rejected", args...)
		default:
			log.Info(c.UserContext(), "request handled", args...)
		}
		return err
	}
}
