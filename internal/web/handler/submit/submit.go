// Package submit provides the recipe submission form.
package submit

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/GoCookingBlog/GoCookingBlog/internal/config"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/store"
	"github.com/GoCookingBlog/GoCookingBlog/internal/upload"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/handler"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/navigation"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/session"
)

const (
	// Path is the path of the submission form.
	Path = handler.RootPath + "submit-recipe"

	// TemplateName is the name of the submission form template.
	TemplateName = "submit-recipe"

	// ImageField is the multipart field of the optional image.
	ImageField = "image"

	// MsgAdded confirms a stored recipe.
	MsgAdded = "Recipe has been added."

	msgInvalidForm = "Invalid form data"
	pageTitle      = "Submit recipe"

	resultSuccess = "success"
	resultInvalid = "invalid"
	resultError   = "error"
)

var submissions = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "recipes_submitted_total",
		Help: "Number of recipe submissions, differentiated by result.",
	},
	[]string{"result"},
)

// Service is the submission handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	store     store.Store
	uploads   upload.Storage
	sessions  *session.Store
	validator *validator.Validate
	now       func() time.Time
}

// Handler is the submission handler.
var Handler = Service{}

// Init initializes the submission handler.
func (s *Service) Init(
	app *fiber.App,
	cfg *config.Config,
	st store.Store,
	uploads upload.Storage,
	sessions *session.Store,
) {
	if app == nil || cfg == nil || st == nil || uploads == nil || sessions == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return
	}

	s.cfg = cfg
	s.store = st
	s.uploads = uploads
	s.sessions = sessions
	s.validator = newValidator()
	s.now = time.Now

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})
}

// Get renders the form with the messages of the previous submission.
func (s *Service) Get(c *fiber.Ctx) error {
	flashes, err := s.sessions.PopFlashes(c, session.FlashErrors, session.FlashSubmit)
	if err != nil {
		return err
	}

	ctx, cancel := handler.Context(c, s.cfg.Webserver.RequestTimeout)
	defer cancel()

	categories, err := s.store.Categories(ctx, handler.ListLimit)
	if err != nil {
		return err
	}

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": navigation.NewContext(pageTitle, navigation.SectionSubmit).Current(pageTitle),
		"InfoErrors": flashes[session.FlashErrors],
		"InfoSubmit": flashes[session.FlashSubmit],
		"Categories": categories,
	}, handler.BaseLayout)
}

// Post validates and stores a submitted recipe, then redirects back to the form.
// Rejected and failed submissions are reported through the error flash.
// A failing image upload ends the request with an error instead.
func (s *Service) Post(c *fiber.Ctx) error {
	ctx, cancel := handler.Context(c, s.cfg.Webserver.RequestTimeout)
	defer cancel()

	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		log.Warn().Err(err).Msg("failed to parse recipe submission")
		submissions.WithLabelValues(resultInvalid).Inc()

		return s.redirect(c, session.FlashErrors, msgInvalidForm)
	}

	form.Normalize()

	if err := validate(ctx, s.validator, s.store, form); err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			log.Info().Strs("problems", validationErr.Messages).Msg("recipe submission rejected")
			submissions.WithLabelValues(resultInvalid).Inc()

			return s.redirect(c, session.FlashErrors, validationErr.Messages...)
		}

		log.Error().Err(err).Msg("failed to validate recipe submission")
		submissions.WithLabelValues(resultError).Inc()

		return s.redirect(c, session.FlashErrors, err.Error())
	}

	image, err := s.storeImage(ctx, c)
	if err != nil {
		submissions.WithLabelValues(resultError).Inc()

		return err
	}

	recipe := form.Recipe(image)

	// a stored image is kept when the recipe can not be created
	if err = s.store.CreateRecipe(ctx, recipe); err != nil {
		log.Error().Err(err).Str("image", image).Msg("failed to store recipe")
		submissions.WithLabelValues(resultError).Inc()

		return s.redirect(c, session.FlashErrors, err.Error())
	}

	log.Info().
		Str("id", recipe.ID).
		Str("category", recipe.Category).
		Str("image", image).
		Msg("recipe added")
	submissions.WithLabelValues(resultSuccess).Inc()

	return s.redirect(c, session.FlashSubmit, MsgAdded)
}

// storeImage saves the optional image and returns its stored name.
// It returns an empty name when no file was sent.
func (s *Service) storeImage(ctx context.Context, c *fiber.Ctx) (string, error) {
	fh, err := c.FormFile(ImageField)
	if err != nil || fh == nil || fh.Filename == "" || fh.Size == 0 {
		return "", nil //nolint:nilerr // the image is optional
	}

	name := upload.NewFilename(fh.Filename, s.now())

	if err = s.saveFile(ctx, name, fh); err != nil {
		log.Error().Err(err).Str("file", fh.Filename).Msg("failed to store uploaded image")

		return "", err
	}

	return name, nil
}

func (s *Service) saveFile(ctx context.Context, name string, fh *multipart.FileHeader) error {
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	return s.uploads.Save(ctx, name, f, fh.Header.Get(fiber.HeaderContentType))
}

func (s *Service) redirect(c *fiber.Ctx, key string, msgs ...string) error {
	if err := s.sessions.AddFlash(c, key, msgs...); err != nil {
		return err
	}

	return c.Redirect(Path, fiber.StatusSeeOther)
}
