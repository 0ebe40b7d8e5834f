// Package mongodb implements store.Store on top of a MongoDB database.
//
// Categories and recipes live in the "categories" and "recipes" collections.
// Recipes carry a text index over name and description, which backs SearchRecipes.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/GoCookingBlog/GoCookingBlog/internal/db/models"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/store"
)

const (
	// CategoriesCollection is the collection holding categories.
	CategoriesCollection = "categories"
	// RecipesCollection is the collection holding recipes.
	RecipesCollection = "recipes"

	textIndexName = "recipe_text"

	// server error codes returned when an equivalent index exists under another name or spec
	codeIndexOptionsConflict  = 85
	codeIndexKeySpecsConflict = 86
)

type categoryDocument struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Name  string             `bson:"name"`
	Image string             `bson:"image"`
}

type recipeDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Email       string             `bson:"email"`
	Ingredients []string           `bson:"ingredients"`
	Category    string             `bson:"category"`
	Image       string             `bson:"image,omitempty"`
}

// Store is a MongoDB backed store.Store.
type Store struct {
	client     *mongo.Client
	categories *mongo.Collection
	recipes    *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// Open connects to uri, verifies the connection and ensures the recipe text index.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}

	s := New(client.Database(database))
	s.client = client

	if err = s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return s, nil
}

// New creates a store on an already connected database.
// Close does not disconnect a client that was not opened by Open.
func New(db *mongo.Database) *Store {
	return &Store{
		categories: db.Collection(CategoriesCollection),
		recipes:    db.Collection(RecipesCollection),
	}
}

// EnsureIndexes creates the text index used for recipe search.
// A text index that already exists under another name, e.g. one created by
// an earlier deployment, is kept and used as is.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.recipes.Indexes().CreateOne(ctx, textIndexModel())
	if isIndexConflict(err) {
		log.Warn().Err(err).Str("collection", RecipesCollection).Msg("keeping existing text index")

		return nil
	}

	if err != nil {
		return fmt.Errorf("mongodb: create text index: %w", err)
	}

	return nil
}

func isIndexConflict(err error) bool {
	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}

	return cmdErr.Code == codeIndexOptionsConflict || cmdErr.Code == codeIndexKeySpecsConflict
}

// Categories implements store.Store.
func (s *Store) Categories(ctx context.Context, limit int) ([]models.Category, error) {
	cursor, err := s.categories.Find(ctx, bson.D{}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("mongodb: find categories: %w", err)
	}

	var docs []categoryDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongodb: decode categories: %w", err)
	}

	out := make([]models.Category, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.model())
	}

	return out, nil
}

// CategoryExists implements store.Store.
func (s *Store) CategoryExists(ctx context.Context, name string) (bool, error) {
	n, err := s.categories.CountDocuments(ctx, bson.M{"name": name}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("mongodb: count categories: %w", err)
	}

	return n > 0, nil
}

// CreateCategories implements store.Store.
func (s *Store) CreateCategories(ctx context.Context, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(categories))
	for _, c := range categories {
		docs = append(docs, categoryDocument{Name: c.Name, Image: c.Image})
	}

	res, err := s.categories.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("mongodb: insert categories: %w", err)
	}

	for i, id := range res.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok && i < len(categories) {
			categories[i].ID = oid.Hex()
		}
	}

	return nil
}

// Recipe implements store.Store.
func (s *Store) Recipe(ctx context.Context, id string) (*models.Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}

	return s.findOneRecipe(ctx, bson.M{"_id": oid}, options.FindOne())
}

// RecipesByCategory implements store.Store.
func (s *Store) RecipesByCategory(ctx context.Context, category string, limit int) ([]models.Recipe, error) {
	return s.findRecipes(ctx, categoryFilter(category), options.Find().SetLimit(int64(limit)))
}

// LatestRecipes implements store.Store.
func (s *Store) LatestRecipes(ctx context.Context, limit int) ([]models.Recipe, error) {
	return s.findRecipes(ctx, bson.D{}, latestOptions(limit))
}

// SearchRecipes implements store.Store.
func (s *Store) SearchRecipes(ctx context.Context, term string) ([]models.Recipe, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Recipe{}, nil
	}

	return s.findRecipes(ctx, textSearchFilter(term), textSearchOptions())
}

// CountRecipes implements store.Store.
func (s *Store) CountRecipes(ctx context.Context) (int64, error) {
	n, err := s.recipes.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("mongodb: count recipes: %w", err)
	}

	return n, nil
}

// RecipeAt implements store.Store.
func (s *Store) RecipeAt(ctx context.Context, offset int64) (*models.Recipe, error) {
	return s.findOneRecipe(ctx, bson.D{}, options.FindOne().SetSkip(offset))
}

// CreateRecipe implements store.Store.
func (s *Store) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	res, err := s.recipes.InsertOne(ctx, newRecipeDocument(recipe))
	if err != nil {
		return fmt.Errorf("mongodb: insert recipe: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		recipe.ID = oid.Hex()
	}

	return nil
}

// Close implements store.Store.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}

	return s.client.Disconnect(ctx)
}

func (s *Store) findRecipes(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Recipe, error) {
	cursor, err := s.recipes.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: find recipes: %w", err)
	}

	var docs []recipeDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongodb: decode recipes: %w", err)
	}

	out := make([]models.Recipe, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.model())
	}

	return out, nil
}

func (s *Store) findOneRecipe(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (*models.Recipe, error) {
	var doc recipeDocument

	err := s.recipes.FindOne(ctx, filter, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("mongodb: find recipe: %w", err)
	}

	recipe := doc.model()

	return &recipe, nil
}

func textIndexModel() mongo.IndexModel {
	return mongo.IndexModel{
		Keys: bson.D{
			{Key: "name", Value: "text"},
			{Key: "description", Value: "text"},
		},
		Options: options.Index().SetName(textIndexName),
	}
}

func categoryFilter(category string) bson.M {
	return bson.M{"category": category}
}

func textSearchFilter(term string) bson.M {
	return bson.M{
		"$text": bson.M{
			"$search":             term,
			"$diacriticSensitive": true,
		},
	}
}

func textSearchOptions() *options.FindOptions {
	score := bson.M{"score": bson.M{"$meta": "textScore"}}

	return options.Find().SetProjection(score).SetSort(score)
}

func latestOptions(limit int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
}

func newRecipeDocument(r *models.Recipe) recipeDocument {
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}

	return recipeDocument{
		Name:        r.Name,
		Description: r.Description,
		Email:       r.Email,
		Ingredients: ingredients,
		Category:    r.Category,
		Image:       r.Image,
	}
}

func (d categoryDocument) model() models.Category {
	return models.Category{
		ID:    d.ID.Hex(),
		Name:  d.Name,
		Image: d.Image,
	}
}

func (d recipeDocument) model() models.Recipe {
	return models.Recipe{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Email:       d.Email,
		Ingredients: d.Ingredients,
		Category:    d.Category,
		Image:       d.Image,
	}
}
