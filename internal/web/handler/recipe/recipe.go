// Package recipe provides the handler of the recipe detail page.
package recipe

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoCookingBlog/GoCookingBlog/internal/config"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/store"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/handler"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/handler/category"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/navigation"
)

const (
	// Path is the path of the recipe detail page.
	Path = handler.RootPath + "recipe"

	// TemplateName is the name of the recipe template.
	TemplateName = "recipe"
)

// Service is the recipe handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	store store.Store
}

// Handler is the recipe handler.
var Handler = Service{}

// Init initializes the recipe handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.cfg = cfg
	s.store = st

	app.Get(Path+"/:id", s.Get)
}

// URL returns the path of the detail page of recipe id.
func URL(id string) string {
	return Path + "/" + id
}

// Get renders a single recipe. Unknown and malformed ids end in store.ErrNotFound.
func (s *Service) Get(c *fiber.Ctx) error {
	ctx, cancel := handler.Context(c, s.cfg.Webserver.RequestTimeout)
	defer cancel()

	recipe, err := s.store.Recipe(ctx, c.Params("id"))
	if err != nil {
		return err
	}

	nav := navigation.NewContext(recipe.Name, navigation.SectionCategories)
	if recipe.Category != "" {
		nav.AddBreadcrumb(recipe.Category, category.URL(recipe.Category))
	}

	nav.Current(recipe.Name)

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": nav,
		"Recipe":     recipe,
	}, handler.BaseLayout)
}
