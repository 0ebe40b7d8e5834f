// Package sqldb implements store.Store with gorm for SQLite, MySQL and PostgreSQL.
package sqldb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoCookingBlog/GoCookingBlog/internal/db/models"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/store"
)

const (
	categoryNamePattern = "name = ?"
	recipeCategoryQuery = "category = ?"
	searchTextPattern   = "search_text LIKE ? ESCAPE '" + likeEscape + "'"
	emptySearchText     = "search_text = '' OR search_text IS NULL"
	latestOrder         = "id DESC"
	naturalOrder        = "id ASC"

	// likeEscape is the escape character used in LIKE patterns.
	// A backslash would need different quoting in MySQL and PostgreSQL.
	likeEscape = "!"
)

// ErrUnsupportedEngine is returned by Dialector for non SQL engines.
var ErrUnsupportedEngine = errors.New("unsupported sql engine")

// CategoryRow is the categories table.
type CategoryRow struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"size:100;not null;index"`
	Image string `gorm:"size:255"`
}

// TableName specifies the database table name for CategoryRow.
func (CategoryRow) TableName() string {
	return "categories"
}

// RecipeRow is the recipes table.
// Ingredients are serialized as a JSON array.
// SearchText holds name and description lowercased with Unicode rules,
// SQLite's LOWER only folds ASCII.
type RecipeRow struct {
	ID          uint64   `gorm:"primaryKey"`
	Name        string   `gorm:"size:255;not null"`
	Description string   `gorm:"type:text"`
	Email       string   `gorm:"size:255"`
	Ingredients []string `gorm:"serializer:json;type:text"`
	Category    string   `gorm:"size:100;index"`
	Image       string   `gorm:"size:255"`
	SearchText  string   `gorm:"type:text"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for RecipeRow.
func (RecipeRow) TableName() string {
	return "recipes"
}

// Store is a gorm backed store.Store.
type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// Dialector returns the gorm dialector for engine and dsn.
func Dialector(engine store.Engine, dsn string) (gorm.Dialector, error) {
	switch engine {
	case store.EngineSQLite:
		return sqlite.Open(dsn), nil
	case store.EngineMySQL:
		return gormmysql.Open(dsn), nil
	case store.EnginePostgres:
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEngine, engine)
	}
}

// Open opens the database behind dialector and migrates the schema.
func Open(dialector gorm.Dialector, cfg *gorm.Config) (*Store, error) {
	if cfg == nil {
		cfg = &gorm.Config{}
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("sqldb: open: %w", err)
	}

	return New(db)
}

// New wraps db and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, store.ErrDBNil
	}

	if err := db.AutoMigrate(&CategoryRow{}, &RecipeRow{}); err != nil {
		return nil, fmt.Errorf("sqldb: migrate: %w", err)
	}

	if err := backfillSearchText(db); err != nil {
		return nil, fmt.Errorf("sqldb: backfill search text: %w", err)
	}

	return &Store{db: db}, nil
}

// backfillSearchText fills the search column of rows written before it existed.
func backfillSearchText(db *gorm.DB) error {
	var rows []RecipeRow

	if err := db.Select("id", "name", "description").Where(emptySearchText).Find(&rows).Error; err != nil {
		return err
	}

	for _, row := range rows {
		text := searchText(row.Name, row.Description)
		if text == "" {
			continue
		}

		if err := db.Model(&RecipeRow{}).Where("id = ?", row.ID).Update("search_text", text).Error; err != nil {
			return err
		}
	}

	return nil
}

// Categories implements store.Store.
func (s *Store) Categories(ctx context.Context, limit int) ([]models.Category, error) {
	var rows []CategoryRow

	if err := s.db.WithContext(ctx).Order(naturalOrder).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]models.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.model())
	}

	return out, nil
}

// CategoryExists implements store.Store.
func (s *Store) CategoryExists(ctx context.Context, name string) (bool, error) {
	var count int64

	err := s.db.WithContext(ctx).Model(&CategoryRow{}).Where(categoryNamePattern, name).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// CreateCategories implements store.Store.
func (s *Store) CreateCategories(ctx context.Context, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}

	rows := make([]CategoryRow, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, CategoryRow{Name: c.Name, Image: c.Image})
	}

	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}

	for i := range rows {
		categories[i].ID = formatID(rows[i].ID)
	}

	return nil
}

// Recipe implements store.Store.
func (s *Store) Recipe(ctx context.Context, id string) (*models.Recipe, error) {
	key, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, store.ErrNotFound
	}

	var row RecipeRow

	err = s.db.WithContext(ctx).First(&row, key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	recipe := row.model()

	return &recipe, nil
}

// RecipesByCategory implements store.Store.
func (s *Store) RecipesByCategory(ctx context.Context, category string, limit int) ([]models.Recipe, error) {
	return s.findRecipes(s.db.WithContext(ctx).Where(recipeCategoryQuery, category).Order(naturalOrder).Limit(limit))
}

// LatestRecipes implements store.Store.
func (s *Store) LatestRecipes(ctx context.Context, limit int) ([]models.Recipe, error) {
	return s.findRecipes(s.db.WithContext(ctx).Order(latestOrder).Limit(limit))
}

// SearchRecipes implements store.Store.
// A recipe matches when any word of term occurs in its name or description.
// Matching ignores case but keeps accented characters distinct.
func (s *Store) SearchRecipes(ctx context.Context, term string) ([]models.Recipe, error) {
	words := strings.Fields(term)
	if len(words) == 0 {
		return []models.Recipe{}, nil
	}

	var (
		clauses = make([]string, 0, len(words))
		args    = make([]interface{}, 0, len(words))
	)

	for _, word := range words {
		clauses = append(clauses, searchTextPattern)
		args = append(args, "%"+escapeLike(strings.ToLower(word))+"%")
	}

	return s.findRecipes(s.db.WithContext(ctx).Where(strings.Join(clauses, " OR "), args...).Order(latestOrder))
}

// CountRecipes implements store.Store.
func (s *Store) CountRecipes(ctx context.Context) (int64, error) {
	var count int64

	if err := s.db.WithContext(ctx).Model(&RecipeRow{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// RecipeAt implements store.Store.
func (s *Store) RecipeAt(ctx context.Context, offset int64) (*models.Recipe, error) {
	var row RecipeRow

	err := s.db.WithContext(ctx).Order(naturalOrder).Offset(int(offset)).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	recipe := row.model()

	return &recipe, nil
}

// CreateRecipe implements store.Store.
func (s *Store) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	row := newRecipeRow(recipe)

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}

	recipe.ID = formatID(row.ID)

	return nil
}

// Close implements store.Store.
func (s *Store) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func (s *Store) findRecipes(tx *gorm.DB) ([]models.Recipe, error) {
	var rows []RecipeRow

	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]models.Recipe, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.model())
	}

	return out, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	).Replace(s)
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func newRecipeRow(r *models.Recipe) RecipeRow {
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}

	return RecipeRow{
		Name:        r.Name,
		Description: r.Description,
		Email:       r.Email,
		Ingredients: ingredients,
		Category:    r.Category,
		Image:       r.Image,
		SearchText:  searchText(r.Name, r.Description),
	}
}

func searchText(name, description string) string {
	return strings.ToLower(name + "\n" + description)
}

func (r CategoryRow) model() models.Category {
	return models.Category{
		ID:    formatID(r.ID),
		Name:  r.Name,
		Image: r.Image,
	}
}

func (r RecipeRow) model() models.Recipe {
	return models.Recipe{
		ID:          formatID(r.ID),
		Name:        r.Name,
		Description: r.Description,
		Email:       r.Email,
		Ingredients: r.Ingredients,
		Category:    r.Category,
		Image:       r.Image,
	}
}
