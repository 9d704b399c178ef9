package session

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/redis"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/corestudios/rolebridge/internal/pkg/config"
)

// CookieName is the cookie carrying the opaque session id.
const CookieName = "session_id"

// ErrSession wraps failures of the underlying session storage.
var ErrSession = errors.New("session store failure")

// Store is a per-browser key-value session addressed by the request's cookie.
type Store interface {
	// Get returns the value and whether it was present.
	Get(c *fiber.Ctx, key string) (string, bool, error)
	Set(c *fiber.Ctx, key, value string) error
	// Destroy drops the whole session and expires the cookie. Destroying a
	// session that does not exist is not an error.
	Destroy(c *fiber.Ctx) error
}

type fiberStore struct {
	store *session.Store
}

// NewStore builds the session store. Sessions live in process memory unless a
// cache client is given, in which case they are kept in Redis (DB 1).
func NewStore(cfg *config.Config, cacheClient *goredis.Client) Store {
	sessCfg := session.Config{
		Expiration:     cfg.Session.Expiration,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   !cfg.IsDev,
		KeyGenerator:   uuid.NewString,
	}

	if cacheClient != nil {
		sessCfg.Storage = newRedisStorage(cfg.Cache, cacheClient)
		log.Info("[Session] Using redis session storage")
	} else {
		log.Info("[Session] Using in-memory session storage")
	}

	return &fiberStore{store: session.New(sessCfg)}
}

// NewMemoryStore is an in-memory Store, used by tests and single-node setups.
func NewMemoryStore() Store {
	return &fiberStore{store: session.New(session.Config{
		KeyLookup:    "cookie:" + CookieName,
		KeyGenerator: uuid.NewString,
	})}
}

func newRedisStorage(cfg config.CacheConfig, cacheClient *goredis.Client) *redis.Storage {
	host := cfg.Host
	port := 6379
	if h, p, err := net.SplitHostPort(cacheClient.Options().Addr); err == nil {
		host = h
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: cacheClient.Options().Password,
		Database: 1, // Separate database for sessions
		Reset:    false,
	})
}

func (s *fiberStore) Get(c *fiber.Ctx, key string) (string, bool, error) {
	sess, err := s.store.Get(c)
	if err != nil {
		return "", false, fmt.Errorf("%w: get: %w", ErrSession, err)
	}
	value, ok := sess.Get(key).(string)
	if !ok || value == "" {
		return "", false, nil
	}
	return value, true, nil
}

func (s *fiberStore) Set(c *fiber.Ctx, key, value string) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return fmt.Errorf("%w: get: %w", ErrSession, err)
	}
	sess.Set(key, value)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("%w: save: %w", ErrSession, err)
	}
	return nil
}

func (s *fiberStore) Destroy(c *fiber.Ctx) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return fmt.Errorf("%w: get: %w", ErrSession, err)
	}
	if err := sess.Destroy(); err != nil {
		return fmt.Errorf("%w: destroy: %w", ErrSession, err)
	}
	return nil
}
