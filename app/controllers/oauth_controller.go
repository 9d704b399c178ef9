package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/corestudios/rolebridge/app/models"
	"github.com/corestudios/rolebridge/internal/pkg/constants"
	"github.com/corestudios/rolebridge/internal/pkg/metrics"
	"github.com/corestudios/rolebridge/internal/pkg/session"
	"github.com/corestudios/rolebridge/internal/pkg/usercontext"
)

const (
	msgMissingCode = "Erro ao logar com o Discord."
	msgLoginFailed = "Erro ao logar."
)

// Authenticator is the OAuth provider as seen by the login flow.
type Authenticator interface {
	AuthorizeURL() string
	Authenticate(ctx context.Context, code string) (*models.DiscordUser, error)
}

// OAuthController implements /login and the provider callback.
type OAuthController struct {
	auth     Authenticator
	sessions session.Store
	metrics  *metrics.Metrics
	timeout  time.Duration
}

func NewOAuthController(auth Authenticator, sessions session.Store, m *metrics.Metrics) *OAuthController {
	return &OAuthController{
		auth:     auth,
		sessions: sessions,
		metrics:  m,
		timeout:  outboundTimeout,
	}
}

// HandleLogin redirects to the provider's authorize page.
func (oc *OAuthController) HandleLogin(c *fiber.Ctx) error {
	return c.Redirect(oc.auth.AuthorizeURL(), fiber.StatusFound)
}

// HandleOAuthCallback completes the provider flow and logs the user in.
// Failures answer with plain text; nothing is stored unless the profile was
// fetched.
func (oc *OAuthController) HandleOAuthCallback(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		if oauthErr := c.Query("error"); oauthErr != "" {
			log.Warnf("[OAuth] Provider returned error: %s (%s)", oauthErr, c.Query("error_description"))
		}
		oc.metrics.OAuthLogins.WithLabelValues("missing_code").Inc()
		return c.SendString(msgMissingCode)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), oc.timeout)
	defer cancel()

	user, err := oc.auth.Authenticate(ctx, code)
	if err != nil {
		oc.metrics.OAuthLogins.WithLabelValues("failed").Inc()
		log.Errorf("[OAuth] Erro no login: %v", err)
		return c.SendString(msgLoginFailed)
	}

	raw, err := user.Encode()
	if err != nil {
		oc.metrics.OAuthLogins.WithLabelValues("failed").Inc()
		log.Errorf("[OAuth] Could not encode profile for %s: %v", user.ID, err)
		return c.SendString(msgLoginFailed)
	}
	if err := oc.sessions.Set(c, usercontext.KeyDiscordUser, raw); err != nil {
		oc.metrics.OAuthLogins.WithLabelValues("failed").Inc()
		log.Errorf("[OAuth] Could not store session for %s: %v", user.ID, err)
		return c.SendString(msgLoginFailed)
	}

	oc.metrics.OAuthLogins.WithLabelValues("success").Inc()
	log.Infof("[OAuth] Usuário logado: %s (%s)", user.Username, user.ID)
	return c.Redirect(constants.DashboardRoute, fiber.StatusFound)
}
