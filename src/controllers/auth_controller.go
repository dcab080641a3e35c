package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/Backend-DevTinder/src/common"
	"github.com/theleywin/Backend-DevTinder/src/lib"
	"github.com/theleywin/Backend-DevTinder/src/middleware"
	"github.com/theleywin/Backend-DevTinder/src/services"
)

// Signup validates the input and creates the account
func (h *Controller) Signup(c *fiber.Ctx) error {
	var in services.SignupInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}

	ctx, cancel := h.context(c)
	defer cancel()

	user, err := h.Users.Signup(ctx, in)
	if err != nil {
		return h.fail(c, err, on(common.ErrConflict, "User already exists"))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// Login authenticates by e-mail and password and sets the token cookie
func (h *Controller) Login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"emailId"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}

	ctx, cancel := h.context(c)
	defer cancel()

	token, user, err := h.Users.Login(ctx, in.Email, in.Password)
	if err != nil {
		return h.fail(c, err,
			on(common.ErrValidation, "Email and password are required"),
			on(common.ErrUnauthorized, "Invalid email or password"),
		)
	}

	c.Cookie(h.tokenCookie(token, time.Now().Add(h.TokenTTL)))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Logout clears the token cookie
func (h *Controller) Logout(c *fiber.Ctx) error {
	c.Cookie(h.tokenCookie("", time.Unix(0, 0)))
	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Logout successful"))
}

func (h *Controller) tokenCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    value,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.SecureCookie,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}
