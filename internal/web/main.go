// Package web wires the page handlers into a fiber application and runs it.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/GoCookingBlog/GoCookingBlog/internal/config"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/store"
	accesslog "github.com/GoCookingBlog/GoCookingBlog/internal/logger/adapter/fiber"
	"github.com/GoCookingBlog/GoCookingBlog/internal/upload"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/handler"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/handler/category"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/handler/explore"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/handler/home"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/handler/recipe"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/handler/search"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/handler/submit"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/session"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes prometheus metrics.
	MetricsPath = "/metrics"

	staticPath = "/static"

	// uploads are limited to a few images per form
	bodyLimit = 10 * 1024 * 1024
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for a termination signal and shuts the web service down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown drains the check alive endpoint and stops the http server.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive answers 200 while the service takes traffic and 503 while it drains.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, st store.Store, uploads upload.Storage, sessions *session.Store) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if st == nil {
		panic("store cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			UnescapePath:   true,
			Prefork:        false,
			Immutable:      true,
			BodyLimit:      bodyLimit,
			Views:          newTemplateEngine(cfg, uploads),
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	app.Use(accesslog.New(accesslog.Config{
		Next:          accesslog.SkipStatic(staticPath, cfg.Upload.URLPath),
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// serve embedded static files
	app.Use(staticPath,
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
				MaxAge:     3600, //nolint:mnd
			},
		),
	)

	// serve uploaded images from disk, s3 uploads are served by the bucket
	if local, ok := uploads.(*upload.Local); ok {
		app.Static(cfg.Upload.URLPath, local.Dir(), fiber.Static{
			Browse: false,
			MaxAge: 3600, //nolint:mnd
		})
	}

	home.Handler.Init(app, cfg, st)
	category.Handler.Init(app, cfg, st)
	recipe.Handler.Init(app, cfg, st)
	search.Handler.Init(app, cfg, st)
	explore.Handler.Init(app, cfg, st)
	submit.Handler.Init(app, cfg, st, uploads, sessions)

	return service
}

func newTemplateEngine(cfg *config.Config, uploads upload.Storage) *html.Engine {
	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	templateEngine.AddFunc("imageURL", func(name string) string {
		return imageURL(uploads, name)
	})
	templateEngine.AddFunc("categoryURL", category.URL)
	templateEngine.AddFunc("recipeURL", recipe.URL)

	return templateEngine
}

// imageURL resolves a recipe or category image.
func imageURL(uploads upload.Storage, name string) string {
	switch {
	case name == "":
		return staticPath + "/img/no-image.svg"
	case strings.HasPrefix(name, "http://"), strings.HasPrefix(name, "https://"):
		return name
	default:
		return uploads.URL(name)
	}
}
