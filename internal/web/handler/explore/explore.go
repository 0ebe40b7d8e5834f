// Package explore provides the handlers for the latest and the random recipe pages.
package explore

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoCookingBlog/GoCookingBlog/internal/config"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/store"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/handler"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/navigation"
)

const (
	// LatestPath is the path of the latest recipes page.
	LatestPath = handler.RootPath + "explore-latest"

	// RandomPath is the path of the random recipe page.
	RandomPath = handler.RootPath + "explore-random"

	// LatestTemplateName is the name of the latest recipes template.
	LatestTemplateName = "explore-latest"

	// RandomTemplateName is the name of the random recipe template.
	RandomTemplateName = "explore-random"
)

// Service is the explore handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	store store.Store
}

// Handler is the explore handler.
var Handler = Service{}

// Init initializes the explore handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.cfg = cfg
	s.store = st

	app.Get(LatestPath, s.Latest)
	app.Get(RandomPath, s.Random)
}

// Latest renders the most recently submitted recipes.
func (s *Service) Latest(c *fiber.Ctx) error {
	ctx, cancel := handler.Context(c, s.cfg.Webserver.RequestTimeout)
	defer cancel()

	recipes, err := s.store.LatestRecipes(ctx, handler.ListLimit)
	if err != nil {
		return err
	}

	title := "Latest recipes"

	return c.Render(LatestTemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": navigation.NewContext(title, navigation.SectionLatest).Current(title),
		"Recipes":    recipes,
	}, handler.BaseLayout)
}

// Random renders one recipe picked at random. An empty store ends in store.ErrNotFound.
func (s *Service) Random(c *fiber.Ctx) error {
	ctx, cancel := handler.Context(c, s.cfg.Webserver.RequestTimeout)
	defer cancel()

	recipe, err := store.RandomRecipe(ctx, s.store)
	if err != nil {
		return err
	}

	title := "Random recipe"

	return c.Render(RandomTemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": navigation.NewContext(title, navigation.SectionRandom).Current(title),
		"Recipe":     recipe,
	}, handler.BaseLayout)
}
