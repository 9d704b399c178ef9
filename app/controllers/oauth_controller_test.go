package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corestudios/rolebridge/app/models"
	"github.com/corestudios/rolebridge/internal/pkg/metrics"
	"github.com/corestudios/rolebridge/internal/pkg/middleware"
	"github.com/corestudios/rolebridge/internal/pkg/session"
)

const fakeAuthorizeURL = "https://discord.com/oauth2/authorize?client_id=client&redirect_uri=http%3A%2F%2Flocalhost%3A3000%2Fauth%2Fdiscord%2Fcallback&response_type=code&scope=identify"

type fakeAuthenticator struct {
	user  models.DiscordUser
	err   error
	codes []string
}

func (f *fakeAuthenticator) AuthorizeURL() string {
	return fakeAuthorizeURL
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, code string) (*models.DiscordUser, error) {
	f.codes = append(f.codes, code)
	if f.err != nil {
		return nil, f.err
	}
	u := f.user
	return &u, nil
}

func newAuthApp(auth Authenticator) *fiber.App {
	store := session.NewMemoryStore()
	oc := NewOAuthController(auth, store, metrics.New())
	ac := NewAuthController(store)

	app := fiber.New()
	app.Use(middleware.UserContextMiddleware(store))
	app.Get("/", HandleStart)
	app.Get("/login", oc.HandleLogin)
	app.Get("/auth/discord/callback", oc.HandleOAuthCallback)
	app.Get("/dashboard", middleware.RequireAuth, ac.HandleDashboard)
	app.Get("/logout", ac.HandleAuthLogout)
	return app
}

// browser keeps the session cookie between requests like a real client.
type browser struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, app *fiber.App) *browser {
	return &browser{t: t, app: app, cookies: map[string]*http.Cookie{}}
}

func (b *browser) get(path string) (*http.Response, string) {
	b.t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	resp, err := b.app.Test(req, -1)
	require.NoError(b.t, err)
	for _, c := range resp.Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestHandleLogin_RedirectsToProvider(t *testing.T) {
	app := newAuthApp(&fakeAuthenticator{})

	resp, _ := newBrowser(t, app).get("/login")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, fakeAuthorizeURL, resp.Header.Get("Location"))
}

func TestHandleOAuthCallback_MissingCode(t *testing.T) {
	auth := &fakeAuthenticator{}
	b := newBrowser(t, newAuthApp(auth))

	resp, body := b.get("/auth/discord/callback")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Erro ao logar com o Discord.", body)
	assert.Empty(t, auth.codes)

	resp, body = b.get("/auth/discord/callback?error=access_denied")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Erro ao logar com o Discord.", body)
}

func TestHandleOAuthCallback_ExchangeFails(t *testing.T) {
	b := newBrowser(t, newAuthApp(&fakeAuthenticator{err: errors.New("invalid_grant")}))

	resp, body := b.get("/auth/discord/callback?code=expired")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Erro ao logar.", body)

	resp, _ = b.get("/dashboard")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginRoundTrip(t *testing.T) {
	auth := &fakeAuthenticator{user: models.DiscordUser{
		ID:            "80351110224678912",
		Username:      "Nelly",
		Discriminator: "1337",
		Avatar:        "8342729096ea3675442027381ff50dfe",
	}}
	b := newBrowser(t, newAuthApp(auth))

	resp, _ := b.get("/auth/discord/callback?code=good-code")
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	assert.Equal(t, []string{"good-code"}, auth.codes)

	resp, body := b.get("/dashboard")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Olá, Nelly#1337")
	assert.Contains(t, body, "ID: 80351110224678912")
	assert.Contains(t, body, "https://cdn.discordapp.com/avatars/80351110224678912/8342729096ea3675442027381ff50dfe.png")
}

func TestDashboard_WithoutSession(t *testing.T) {
	b := newBrowser(t, newAuthApp(&fakeAuthenticator{}))

	resp, body := b.get("/dashboard")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.NotContains(t, body, "ID:")
}

func TestLogout_EndsSession(t *testing.T) {
	auth := &fakeAuthenticator{user: models.DiscordUser{ID: "42", Username: "Nelly", Discriminator: "0"}}
	b := newBrowser(t, newAuthApp(auth))

	b.get("/auth/discord/callback?code=good-code")
	resp, _ := b.get("/dashboard")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	for i := 0; i < 2; i++ {
		resp, _ = b.get("/logout")
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))

		resp, _ = b.get("/dashboard")
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
	}
}

func TestLogout_OldCookieCannotBeReplayed(t *testing.T) {
	auth := &fakeAuthenticator{user: models.DiscordUser{ID: "42", Username: "Nelly", Discriminator: "0"}}
	app := newAuthApp(auth)
	b := newBrowser(t, app)

	b.get("/auth/discord/callback?code=good-code")
	stolen := b.cookies[session.CookieName]
	require.NotNil(t, stolen)

	b.get("/logout")

	replay := newBrowser(t, app)
	replay.cookies[session.CookieName] = stolen
	resp, _ := replay.get("/dashboard")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestHandleStart_ShowsLoginLink(t *testing.T) {
	b := newBrowser(t, newAuthApp(&fakeAuthenticator{}))

	resp, body := b.get("/")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `href="/login"`)
}
