// Package handler holds what the page handlers of the web service share.
package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoCookingBlog/GoCookingBlog/internal/config"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/store"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, s store.Store)
}
