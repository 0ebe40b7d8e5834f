// Package home provides the handler of the landing page.
package home

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/GoCookingBlog/GoCookingBlog/internal/config"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/models"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/store"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/handler"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/navigation"
)

const (
	// Path is the path of the landing page.
	Path = handler.RootPath

	// TemplateName is the name of the landing page template.
	TemplateName = "index"
)

// Featured are the categories with their own group on the landing page.
var Featured = []string{"Thai", "American", "Chinese"}

// Food holds the recipe groups of the landing page.
type Food struct {
	Latest   []models.Recipe
	Thai     []models.Recipe
	American []models.Recipe
	Chinese  []models.Recipe
}

// Service is the landing page handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	store store.Store
}

// Handler is the landing page handler.
var Handler = Service{}

// Init initializes the landing page handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.cfg = cfg
	s.store = st

	app.Get(Path, s.Get)
}

// Get renders the landing page.
func (s *Service) Get(c *fiber.Ctx) error {
	ctx, cancel := handler.Context(c, s.cfg.Webserver.RequestTimeout)
	defer cancel()

	var (
		categories []models.Category
		food       Food
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		categories, err = s.store.Categories(gctx, handler.HomeLimit)

		return err
	})

	g.Go(func() (err error) {
		food.Latest, err = s.store.LatestRecipes(gctx, handler.HomeLimit)

		return err
	})

	groups := []*[]models.Recipe{&food.Thai, &food.American, &food.Chinese}
	for i, name := range Featured {
		g.Go(func() (err error) {
			*groups[i], err = s.store.RecipesByCategory(gctx, name, handler.HomeLimit)

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": navigation.NewContext(s.cfg.Title, navigation.SectionHome),
		"Categories": categories,
		"Food":       food,
	}, handler.BaseLayout)
}
