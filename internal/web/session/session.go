// Package session wraps the fiber session store and carries flash messages
// from one request to the next.
package session

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/GoCookingBlog/GoCookingBlog/internal/config"
)

const (
	// FlashErrors holds messages of a failed submission.
	FlashErrors = "infoErrors"

	// FlashSubmit holds the confirmation of a successful submission.
	FlashSubmit = "infoSubmit"

	defaultCookieName = "cookingblog_session"
)

// Flashes maps a flash key to its messages.
type Flashes map[string][]string

// Store is the session store used for flash messages.
type Store struct {
	sessions *session.Store
}

// New creates a session store on storage.
// A nil storage keeps sessions in process memory.
func New(storage fiber.Storage, cfg config.Session, devMode bool) *Store {
	name := cfg.CookieName
	if name == "" {
		name = defaultCookieName
	}

	return &Store{
		sessions: session.New(session.Config{
			Storage:        storage,
			Expiration:     cfg.ExpiryTime,
			KeyLookup:      "cookie:" + name,
			CookieHTTPOnly: true,
			CookieSecure:   !devMode,
			CookieSameSite: "Lax",
		}),
	}
}

// AddFlash appends msgs to the flash slot key and saves the session.
func (s *Store) AddFlash(c *fiber.Ctx, key string, msgs ...string) error {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return err
	}

	var current []string
	if v, ok := sess.Get(key).([]string); ok {
		current = v
	}

	sess.Set(key, append(current, msgs...))

	return sess.Save()
}

// PopFlashes reads and clears the flash slots keys.
// Every requested key is present in the result, empty slots map to nil.
func (s *Store) PopFlashes(c *fiber.Ctx, keys ...string) (Flashes, error) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return nil, err
	}

	var (
		out     = make(Flashes, len(keys))
		changed bool
	)

	for _, key := range keys {
		v := sess.Get(key)
		if v == nil {
			out[key] = nil

			continue
		}

		msgs, _ := v.([]string)
		out[key] = msgs

		sess.Delete(key)

		changed = true
	}

	if !changed {
		return out, nil
	}

	return out, sess.Save()
}
