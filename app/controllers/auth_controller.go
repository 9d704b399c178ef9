package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/corestudios/rolebridge/internal/pkg/constants"
	"github.com/corestudios/rolebridge/internal/pkg/session"
	"github.com/corestudios/rolebridge/internal/pkg/usercontext"
	"github.com/corestudios/rolebridge/views"
)

// AuthController serves the profile page and logout.
type AuthController struct {
	sessions session.Store
}

func NewAuthController(sessions session.Store) *AuthController {
	return &AuthController{sessions: sessions}
}

// HandleDashboard renders the stored profile. The route is guarded by
// middleware.RequireAuth, the check here only covers direct mounting.
func (ac *AuthController) HandleDashboard(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn || userCtx.User == nil {
		return c.Redirect(constants.LoginRoute, fiber.StatusFound)
	}
	return render(c, views.Dashboard(*userCtx.User))
}

// HandleAuthLogout destroys the session and returns to the landing page. It
// always redirects, also when there was no session to destroy.
func (ac *AuthController) HandleAuthLogout(c *fiber.Ctx) error {
	if err := ac.sessions.Destroy(c); err != nil {
		log.Errorf("[Session] Logout could not destroy session: %v", err)
		c.ClearCookie(session.CookieName)
	}

	c.Locals(usercontext.KeyUserContext, usercontext.UserContext{IsLoggedIn: false})

	fm := fiber.Map{
		"type":    "success",
		"message": "Até logo!",
	}
	return flash.WithSuccess(c, fm).Redirect(constants.HomeRoute, fiber.StatusFound)
}
