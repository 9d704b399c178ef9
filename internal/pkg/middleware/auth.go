package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/corestudios/rolebridge/internal/pkg/constants"
	"github.com/corestudios/rolebridge/internal/pkg/usercontext"
)

// RequireAuth ensures a logged-in web session; redirects to /login if missing.
func RequireAuth(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn || userCtx.User == nil {
		return c.Redirect(constants.LoginRoute, fiber.StatusFound)
	}
	return c.Next()
}
