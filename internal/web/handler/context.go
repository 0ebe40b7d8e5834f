package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Context derives the context for store calls of a request.
// A timeout of zero or less leaves the request context unbounded.
func Context(c *fiber.Ctx, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}

	return context.WithTimeout(c.UserContext(), timeout)
}
