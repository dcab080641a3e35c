package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/lib"
	"github.com/theleywin/Backend-DevTinder/src/logging"
	"github.com/theleywin/Backend-DevTinder/src/models"
	"github.com/theleywin/Backend-DevTinder/src/store"
)

// TokenCookie is the cookie login sets and ProtectRoute reads.
const TokenCookie = "token"

type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// ProtectRoute checks for a valid JWT (Authorization: Bearer header first,
// then the token cookie), loads the user and attaches it to the request
// context under "user".
func ProtectRoute(tokens TokenVerifier, users store.UserRepository, timeout time.Duration, log logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			token = c.Cookies(TokenCookie)
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - no token provided"))
		}

		userID, err := tokens.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - invalid token"))
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		user, err := users.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - user not found"))
			}
			log.Error(ctx, "failed to load authenticated user", "user_id", userID, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
		}

		user.Password = ""
		c.Locals("user", *user)
		return c.Next()
	}
}

// CurrentUser returns the user ProtectRoute attached.
func CurrentUser(c *fiber.Ctx) models.User {
	u, _ := c.Locals("user").(models.User)
	return u
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
