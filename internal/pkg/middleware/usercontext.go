package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/corestudios/rolebridge/app/models"
	"github.com/corestudios/rolebridge/internal/pkg/session"
	"github.com/corestudios/rolebridge/internal/pkg/usercontext"
)

// UserContextMiddleware loads the session profile, if any, into the request's
// user context. A profile that cannot be read counts as anonymous.
func UserContextMiddleware(store session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		anonymous := usercontext.UserContext{IsLoggedIn: false}

		raw, ok, err := store.Get(c, usercontext.KeyDiscordUser)
		if err != nil {
			log.Warnf("[Session] Could not load session: %v", err)
			c.Locals(usercontext.KeyUserContext, anonymous)
			return c.Next()
		}
		if !ok {
			c.Locals(usercontext.KeyUserContext, anonymous)
			return c.Next()
		}

		user, err := models.DecodeDiscordUser(raw)
		if err != nil {
			log.Warnf("[Session] Discarding unreadable profile: %v", err)
			c.Locals(usercontext.KeyUserContext, anonymous)
			return c.Next()
		}

		c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
			User:       user,
			IsLoggedIn: true,
		})
		return c.Next()
	}
}
