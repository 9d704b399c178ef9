package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/corestudios/rolebridge/app/models"
	"github.com/corestudios/rolebridge/internal/pkg/config"
)

// ScopeIdentify is the only scope requested; it exposes /users/@me.
const ScopeIdentify = "identify"

// ErrOAuthExchange wraps every failure between receiving the code and
// holding a profile.
var ErrOAuthExchange = errors.New("discord oauth exchange failed")

// DiscordClient performs the authorization-code flow against Discord.
type DiscordClient struct {
	config     *oauth2.Config
	apiBaseURL string
	httpClient *http.Client
}

func NewDiscordClient(cfg config.OAuthConfig) *DiscordClient {
	return &DiscordClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{ScopeIdentify},
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthorizeURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		apiBaseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// AuthorizeURL is the provider page /login redirects to. No state parameter
// is sent.
func (c *DiscordClient) AuthorizeURL() string {
	return c.config.AuthCodeURL("")
}

// Exchange trades an authorization code for an access token. The scope is
// repeated in the token request as Discord's docs show.
func (c *DiscordClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: oauth code is required", ErrOAuthExchange)
	}
	tok, err := c.config.Exchange(c.clientContext(ctx), code, oauth2.SetAuthURLParam("scope", ScopeIdentify))
	if err != nil {
		return nil, fmt.Errorf("%w: token: %w", ErrOAuthExchange, err)
	}
	return tok, nil
}

// FetchUser loads /users/@me with the bearer token.
func (c *DiscordClient) FetchUser(ctx context.Context, tok *oauth2.Token) (*models.DiscordUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+"/users/@me", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOAuthExchange, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.config.Client(c.clientContext(ctx), tok).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: profile: %w", ErrOAuthExchange, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: profile request failed: status=%d body=%s", ErrOAuthExchange, resp.StatusCode, string(body))
	}

	var user models.DiscordUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("%w: profile decode: %w", ErrOAuthExchange, err)
	}
	if strings.TrimSpace(user.ID) == "" {
		return nil, fmt.Errorf("%w: profile response missing user id", ErrOAuthExchange)
	}
	return &user, nil
}

// Authenticate runs Exchange followed by FetchUser.
func (c *DiscordClient) Authenticate(ctx context.Context, code string) (*models.DiscordUser, error) {
	tok, err := c.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	return c.FetchUser(ctx, tok)
}

func (c *DiscordClient) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}
