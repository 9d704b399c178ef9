package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/corestudios/rolebridge/internal/pkg/env"
)

const (
	DefaultPort              = "3000"
	DefaultSessionExpiration = 24 * time.Hour

	DefaultDiscordAuthorizeURL = "https://discord.com/oauth2/authorize"
	DefaultDiscordTokenURL     = "https://discord.com/api/oauth2/token"
	DefaultDiscordAPIBaseURL   = "https://discord.com/api"
)

// Config is the process-wide configuration. It is built once in main and
// handed to the constructors that need it.
type Config struct {
	Host  string
	Port  string `validate:"required,numeric"`
	IsDev bool
	// ProxyHeader names the header carrying the client IP behind a reverse
	// proxy (e.g. X-Forwarded-For). Empty uses the socket address.
	ProxyHeader string

	Discord DiscordConfig
	OAuth   OAuthConfig
	Session SessionConfig
	Cache   CacheConfig
	Metrics MetricsConfig
}

type DiscordConfig struct {
	BotToken     string `validate:"required"`
	GuildID      string `validate:"required,numeric"`
	LogChannelID string `validate:"required,numeric"`
}

type OAuthConfig struct {
	ClientID     string `validate:"required"`
	ClientSecret string `validate:"required"`
	RedirectURI  string `validate:"required,url"`
	AuthorizeURL string `validate:"required,url"`
	TokenURL     string `validate:"required,url"`
	APIBaseURL   string `validate:"required,url"`
}

type SessionConfig struct {
	Expiration time.Duration `validate:"gt=0"`
}

// CacheConfig is optional; an empty Host keeps sessions in memory.
type CacheConfig struct {
	Host     string
	Port     string `validate:"omitempty,numeric"`
	Password string
}

// MetricsConfig holds the basic auth credentials of the metrics routes.
// Without credentials the routes are not mounted.
type MetricsConfig struct {
	User     string `validate:"required_with=Password"`
	Password string `validate:"required_with=User"`
}

// Enabled reports whether metrics credentials have been configured.
func (m MetricsConfig) Enabled() bool {
	return m.User != "" && m.Password != ""
}

// Enabled reports whether a Redis cache has been configured.
func (c CacheConfig) Enabled() bool {
	return c.Host != ""
}

// Addr returns host:port of the cache server.
func (c CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// ListenAddr is the address passed to fiber's Listen.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Load reads the environment (see env.SetupEnvFile) into a validated Config.
func Load() (*Config, error) {
	expiration := DefaultSessionExpiration
	if raw := env.GetEnv("SESSION_EXPIRATION", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_EXPIRATION %q: %w", raw, err)
		}
		expiration = d
	}

	cfg := &Config{
		Host:        env.GetEnv("APP_HOST", ""),
		Port:        env.GetEnv("PORT", DefaultPort),
		IsDev:       env.IsDev(),
		ProxyHeader: env.GetEnv("PROXY_HEADER", ""),
		Discord: DiscordConfig{
			BotToken:     env.GetEnv("DISCORD_TOKEN", ""),
			GuildID:      env.GetEnv("GUILD_ID", ""),
			LogChannelID: env.GetEnv("LOG_CHANNEL_ID", ""),
		},
		OAuth: OAuthConfig{
			ClientID:     env.GetEnv("DISCORD_CLIENT_ID", ""),
			ClientSecret: env.GetEnv("DISCORD_CLIENT_SECRET", ""),
			RedirectURI:  env.GetEnv("REDIRECT_URI", ""),
			AuthorizeURL: env.GetEnv("DISCORD_AUTHORIZE_URL", DefaultDiscordAuthorizeURL),
			TokenURL:     env.GetEnv("DISCORD_TOKEN_URL", DefaultDiscordTokenURL),
			APIBaseURL:   strings.TrimRight(env.GetEnv("DISCORD_API_BASE_URL", DefaultDiscordAPIBaseURL), "/"),
		},
		Session: SessionConfig{
			Expiration: expiration,
		},
		Cache: CacheConfig{
			Host:     env.GetEnv("CACHE_HOST", ""),
			Port:     env.GetEnv("CACHE_PORT", "6379"),
			Password: env.GetEnv("CACHE_PASSWORD", ""),
		},
		Metrics: MetricsConfig{
			User:     env.GetEnv("METRICS_USER", ""),
			Password: env.GetEnv("METRICS_PASSWORD", ""),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every struct tag and reports all failures at once.
func (c *Config) Validate() error {
	v := validator.New()
	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
