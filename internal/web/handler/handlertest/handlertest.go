// Package handlertest provides fixtures for testing page handlers.
package handlertest

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/GoCookingBlog/GoCookingBlog/internal/config"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/models"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/sqldb"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/handler"
)

// Render is one call of the views engine.
type Render struct {
	Name   string
	Data   fiber.Map
	Layout string
}

// Views is a fiber views engine recording every render.
// It writes the template name so responses have a body.
type Views struct {
	mu      sync.Mutex
	renders []Render
}

// Load implements fiber.Views.
func (*Views) Load() error { return nil }

// Render implements fiber.Views.
func (v *Views) Render(w io.Writer, name string, data interface{}, layout ...string) error {
	r := Render{Name: name}
	if m, ok := data.(fiber.Map); ok {
		r.Data = m
	}

	if len(layout) > 0 {
		r.Layout = layout[0]
	}

	v.mu.Lock()
	v.renders = append(v.renders, r)
	v.mu.Unlock()

	_, err := io.WriteString(w, name)

	return err
}

// Last returns the most recent render.
func (v *Views) Last(t *testing.T) Render {
	t.Helper()

	v.mu.Lock()
	defer v.mu.Unlock()

	require.NotEmpty(t, v.renders, "nothing was rendered")

	return v.renders[len(v.renders)-1]
}

// Count returns the number of renders.
func (v *Views) Count() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.renders)
}

// NewApp creates a fiber app with recording views and the site error handler.
func NewApp() (*fiber.App, *Views) {
	views := &Views{}

	return fiber.New(fiber.Config{
		Views:        views,
		ErrorHandler: handler.ErrorHandler,
		UnescapePath: true,
	}), views
}

// NewConfig returns a config suitable for handler tests.
func NewConfig() *config.Config {
	return &config.Config{
		DevMode: true,
		Title:   "Cooking Blog",
		DB:      config.DB{Engine: "sqlite", Path: ":memory:"},
		Webserver: config.Webserver{
			Port:           3000,
			URL:            "http://localhost:3000",
			RequestTimeout: 5 * time.Second,
			Session:        config.Session{ExpiryTime: time.Minute},
		},
		Upload: config.Upload{Backend: "local", URLPath: "/uploads"},
	}
}

// NewStore creates a store on an in-memory SQLite database.
func NewStore(t *testing.T) *sqldb.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err, "failed to create test database")

	// every pooled connection would get its own empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	s, err := sqldb.New(db)
	require.NoError(t, err, "failed to migrate test database")

	t.Cleanup(func() {
		_ = s.Close(context.Background())
	})

	return s
}

// SeedCategories inserts categories with the given names.
func SeedCategories(t *testing.T, s *sqldb.Store, names ...string) []models.Category {
	t.Helper()

	categories := make([]models.Category, 0, len(names))
	for _, name := range names {
		categories = append(categories, models.Category{Name: name, Image: name + "-food.jpg"})
	}

	require.NoError(t, s.CreateCategories(context.Background(), categories))

	return categories
}

// SeedRecipes inserts recipes in order and returns them with their IDs set.
func SeedRecipes(t *testing.T, s *sqldb.Store, recipes ...models.Recipe) []models.Recipe {
	t.Helper()

	for i := range recipes {
		require.NoError(t, s.CreateRecipe(context.Background(), &recipes[i]))
	}

	return recipes
}

// Uploads is an in-memory upload.Storage.
type Uploads struct {
	mu    sync.Mutex
	files map[string][]byte
	Err   error
}

// Save implements upload.Storage.
func (u *Uploads) Save(_ context.Context, name string, r io.Reader, _ string) error {
	if u.Err != nil {
		return u.Err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.files == nil {
		u.files = make(map[string][]byte)
	}

	u.files[name] = buf.Bytes()

	return nil
}

// URL implements upload.Storage.
func (*Uploads) URL(name string) string {
	return "/uploads/" + name
}

// Files returns the stored files by name.
func (u *Uploads) Files() map[string][]byte {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make(map[string][]byte, len(u.files))
	for k, v := range u.files {
		out[k] = v
	}

	return out
}
