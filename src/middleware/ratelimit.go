package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/theleywin/Backend-DevTinder/src/lib"
)

// RateLimitAuth limits signup/login to max requests per minute per IP.
func RateLimitAuth(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(lib.MessageResponse("Too many requests, try again later"))
		},
	})
}

// Cors allows the comma separated origins with credentials, so the token
// cookie reaches the API from the frontend.
func Cors(origins string) fiber.Handler {
	parts := strings.Split(origins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	allow := strings.Join(parts, ",")
	return cors.New(cors.Config{
		AllowOrigins:     allow,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowCredentials: allow != "*",
	})
}
