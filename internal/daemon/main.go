// Package daemon assembles the store, session storage, upload storage and web service.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	sessionmongodb "github.com/gofiber/storage/mongodb"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GoCookingBlog/GoCookingBlog/internal/config"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/dsn"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/mongodb"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/sqldb"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/store"
	"github.com/GoCookingBlog/GoCookingBlog/internal/upload"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/session"
)

const (
	connectTimeout = 15 * time.Second
	closeTimeout   = 5 * time.Second

	sessionTable = "sessions"
)

// ErrConfigNil is returned when no configuration is given.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	store      store.Store
	sessions   fiber.Storage
	webService *web.Service
}

// New opens the store and the session storage and creates the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	st, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	uploads, err := upload.New(ctx, cfg.Upload)
	if err != nil {
		closeStore(st)

		return nil, err
	}

	sessionStorage := newSessionStorage(cfg)
	sessions := session.New(sessionStorage, cfg.Webserver.Session, cfg.DevMode)

	return &Daemon{
		cfg:        cfg,
		store:      st,
		sessions:   sessionStorage,
		webService: web.New(cfg, st, uploads, sessions),
	}, nil
}

// Start runs the web service until a termination signal arrives, then releases the storage.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	err := d.webService.Start(":" + strconv.Itoa(d.cfg.Webserver.Port))

	if d.sessions != nil {
		if cerr := d.sessions.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("failed to close session storage")
		}
	}

	closeStore(d.store)

	return err
}

// OpenStore opens the store of the configured engine.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	engine := store.Engine(cfg.DB.Engine)

	if engine == store.EngineMongoDB {
		st, err := mongodb.Open(ctx, cfg.DB.URI, cfg.DB.Name)
		if err != nil {
			return nil, err
		}

		log.Info().Str("engine", cfg.DB.Engine).Str("database", cfg.DB.Name).Msg("store opened")

		return st, nil
	}

	dialector, err := sqldb.Dialector(engine, dsn.Create(cfg))
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{Logger: gormlogger.Discard}
	if cfg.DevMode {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	st, err := sqldb.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", engine, err)
	}

	log.Info().Str("engine", cfg.DB.Engine).Msg("store opened")

	return st, nil
}

// newSessionStorage keeps sessions in the configured database.
// SQLite sessions stay in process memory.
func newSessionStorage(cfg *config.Config) fiber.Storage {
	switch store.Engine(cfg.DB.Engine) {
	case store.EngineMongoDB:
		return sessionmongodb.New(sessionmongodb.Config{
			ConnectionURI: cfg.DB.URI,
			Database:      cfg.DB.Name,
			Collection:    sessionTable,
		})
	case store.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
		})
	case store.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.PostgresURL(cfg),
			Table:         sessionTable,
		})
	default:
		return nil
	}
}

func closeStore(st store.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := st.Close(ctx); err != nil {
		log.Error().Err(err).Msg("failed to close store")
	}
}
