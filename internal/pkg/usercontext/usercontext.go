package usercontext

import (
	"github.com/gofiber/fiber/v2"

	"github.com/corestudios/rolebridge/app/models"
)

// UserContext represents the complete user context for a request
type UserContext struct {
	User       *models.DiscordUser `json:"user,omitempty"`
	IsLoggedIn bool                `json:"is_logged_in"`
}

// GetUserContext retrieves the user context from fiber context
// Returns a default anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx, ok := c.Locals(KeyUserContext).(UserContext); ok {
		return ctx
	}
	return UserContext{IsLoggedIn: false}
}

// IsLoggedIn checks if the current user is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}
