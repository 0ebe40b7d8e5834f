// Package store defines the data access contract for categories and recipes.
//
// Implementations live in the mongodb (document store) and sqldb (gorm) packages.
// Handlers only depend on the Store interface, which is opened once at startup,
// injected into every handler and closed at shutdown.
package store

import (
	"context"
	"errors"

	"github.com/GoCookingBlog/GoCookingBlog/internal/db/models"
)

// Engine names a store backend.
type Engine string

const (
	// EngineMongoDB selects the MongoDB document store.
	EngineMongoDB Engine = "mongodb"
	// EngineSQLite selects gorm with an SQLite database file.
	EngineSQLite Engine = "sqlite"
	// EngineMySQL selects gorm with MySQL.
	EngineMySQL Engine = "mysql"
	// EnginePostgres selects gorm with PostgreSQL.
	EnginePostgres Engine = "postgres"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	// Malformed identifiers are reported as ErrNotFound as well.
	ErrNotFound = errors.New("record not found")
	// ErrDBNil is returned when a store is used without a database handle.
	ErrDBNil = errors.New("database connection is nil")
)

// Store is the data access layer used by the web handlers.
// Implementations must be safe for concurrent use.
type Store interface {
	// Categories returns up to limit categories in insertion order.
	Categories(ctx context.Context, limit int) ([]models.Category, error)
	// CategoryExists reports whether a category with exactly this name exists.
	CategoryExists(ctx context.Context, name string) (bool, error)
	// CreateCategories inserts the given categories and assigns their IDs.
	CreateCategories(ctx context.Context, categories []models.Category) error

	// Recipe returns the recipe with the given ID or ErrNotFound.
	Recipe(ctx context.Context, id string) (*models.Recipe, error)
	// RecipesByCategory returns up to limit recipes whose category equals category exactly.
	RecipesByCategory(ctx context.Context, category string, limit int) ([]models.Recipe, error)
	// LatestRecipes returns up to limit recipes, newest first.
	LatestRecipes(ctx context.Context, limit int) ([]models.Recipe, error)
	// SearchRecipes returns the recipes matching term in their name or description.
	// A blank term returns no recipes.
	SearchRecipes(ctx context.Context, term string) ([]models.Recipe, error)
	// CountRecipes returns the number of stored recipes.
	CountRecipes(ctx context.Context) (int64, error)
	// RecipeAt returns the recipe at offset in natural order or ErrNotFound.
	RecipeAt(ctx context.Context, offset int64) (*models.Recipe, error)
	// CreateRecipe inserts recipe and sets its ID.
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error

	// Close releases the database connection.
	Close(ctx context.Context) error
}
