package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corestudios/rolebridge/app/models"
	"github.com/corestudios/rolebridge/internal/pkg/session"
	"github.com/corestudios/rolebridge/internal/pkg/usercontext"
)

func newProtectedApp(store session.Store) *fiber.App {
	app := fiber.New()
	app.Use(UserContextMiddleware(store))
	app.Get("/login-as", func(c *fiber.Ctx) error {
		return store.Set(c, usercontext.KeyDiscordUser, c.Query("raw"))
	})
	app.Get("/private", RequireAuth, func(c *fiber.Ctx) error {
		return c.SendString(usercontext.GetUserContext(c).User.Username)
	})
	return app
}

func TestRequireAuth_RedirectsAnonymous(t *testing.T) {
	app := newProtectedApp(session.NewMemoryStore())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/private", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRequireAuth_AllowsStoredProfile(t *testing.T) {
	app := newProtectedApp(session.NewMemoryStore())

	raw, err := models.DiscordUser{ID: "42", Username: "Nelly"}.Encode()
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/login-as", nil)
	q := req.URL.Query()
	q.Set("raw", raw)
	req.URL.RawQuery = q.Encode()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	req = httptest.NewRequest(fiber.MethodGet, "/private", nil)
	for _, ck := range resp.Cookies() {
		req.AddCookie(ck)
	}
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Nelly", string(body))
}

func TestRequireAuth_UnreadableProfileIsAnonymous(t *testing.T) {
	app := newProtectedApp(session.NewMemoryStore())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/login-as?raw=garbage", nil), -1)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/private", nil)
	for _, ck := range resp.Cookies() {
		req.AddCookie(ck)
	}
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}
