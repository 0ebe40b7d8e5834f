package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoCookingBlog/GoCookingBlog/internal/db/store"
)

const (
	msgNotFound = "Not found"
	msgInternal = "Internal server error"
)

// ErrorResponse is the body written for failed requests.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ErrorHandler maps handler errors to status codes and a JSON message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, message := fiber.StatusInternalServerError, msgInternal

	var fiberErr *fiber.Error

	switch {
	case errors.Is(err, store.ErrNotFound):
		code, message = fiber.StatusNotFound, msgNotFound
	case errors.As(err, &fiberErr):
		code, message = fiberErr.Code, fiberErr.Message
	default:
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("request failed")
	}

	return c.Status(code).JSON(ErrorResponse{Message: message})
}
