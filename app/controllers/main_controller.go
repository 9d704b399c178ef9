package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/corestudios/rolebridge/internal/pkg/usercontext"
	"github.com/corestudios/rolebridge/views"
)

// HandleStart renders the landing page.
func HandleStart(c *fiber.Ctx) error {
	return render(c, views.Home(usercontext.IsLoggedIn(c), flashMessage(flash.Get(c))))
}

func flashMessage(fm fiber.Map) *views.Flash {
	msg, _ := fm["message"].(string)
	if msg == "" {
		return nil
	}
	typ, _ := fm["type"].(string)
	return &views.Flash{Type: typ, Message: msg}
}
