// Package category provides the handlers of the category pages.
package category

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoCookingBlog/GoCookingBlog/internal/config"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/store"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/handler"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/navigation"
)

const (
	// Path is the path of the category listing.
	Path = handler.RootPath + "categories"

	// TemplateName is the name of the category template.
	TemplateName = "categories"

	pageTitle = "Categories"
)

// Service is the category handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	store store.Store
}

// Handler is the category handler.
var Handler = Service{}

// Init initializes the category handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.cfg = cfg
	s.store = st

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.List)
		router.Get("/:id", s.Recipes)
	})
}

// URL returns the path of the recipe listing of category name.
func URL(name string) string {
	return Path + "/" + url.PathEscape(name)
}

// List renders all categories.
func (s *Service) List(c *fiber.Ctx) error {
	ctx, cancel := handler.Context(c, s.cfg.Webserver.RequestTimeout)
	defer cancel()

	categories, err := s.store.Categories(ctx, handler.ListLimit)
	if err != nil {
		return err
	}

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": navigation.NewContext(pageTitle, navigation.SectionCategories).Current(pageTitle),
		"Categories": categories,
	}, handler.BaseLayout)
}

// Recipes renders the recipes of one category.
// The category is matched by exact name, an unknown category renders an empty list.
func (s *Service) Recipes(c *fiber.Ctx) error {
	ctx, cancel := handler.Context(c, s.cfg.Webserver.RequestTimeout)
	defer cancel()

	name := c.Params("id")

	recipes, err := s.store.RecipesByCategory(ctx, name, handler.ListLimit)
	if err != nil {
		return err
	}

	nav := navigation.NewContext(name, navigation.SectionCategories).
		AddBreadcrumb(pageTitle, Path).
		Current(name)

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": nav,
		"Category":   name,
		"Recipes":    recipes,
	}, handler.BaseLayout)
}
