// Package search provides the recipe search handler.
package search

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/GoCookingBlog/GoCookingBlog/internal/config"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/models"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/store"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/handler"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/navigation"
)

const (
	// Path is the path the search form posts to.
	Path = handler.RootPath + "search"

	// TemplateName is the name of the search results template.
	TemplateName = "search"

	// FormField is the form field holding the search term.
	FormField = "searchTerm"

	pageTitle = "Search"
)

// Service is the search handler service.
type Service struct {
	handler.Service
	cfg   *config.Config
	store store.Store
}

// Handler is the search handler.
var Handler = Service{}

// Init initializes the search handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.cfg = cfg
	s.store = st

	app.Post(Path, s.Post)
}

// Post searches recipes for the submitted term.
// A blank term renders no results without querying the store.
func (s *Service) Post(c *fiber.Ctx) error {
	term := strings.TrimSpace(c.FormValue(FormField))
	recipes := []models.Recipe{}

	if term != "" {
		ctx, cancel := handler.Context(c, s.cfg.Webserver.RequestTimeout)
		defer cancel()

		var err error
		if recipes, err = s.store.SearchRecipes(ctx, term); err != nil {
			return err
		}
	}

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": navigation.NewContext(pageTitle, navigation.SectionSearch).Current(pageTitle),
		"SearchTerm": term,
		"Recipes":    recipes,
	}, handler.BaseLayout)
}
