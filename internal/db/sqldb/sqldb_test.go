package sqldb

import (
	"context"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/GoCookingBlog/GoCookingBlog/internal/db/models"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/store"
)

// setupTestStore creates a store on an in-memory SQLite database.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err, "failed to create test database")

	// every pooled connection would get its own empty in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	s, err := New(db)
	require.NoError(t, err, "failed to migrate test database")

	t.Cleanup(func() {
		_ = s.Close(context.Background())
	})

	return s
}

// seedRecipes inserts recipes in order and returns them with their IDs set.
func seedRecipes(t *testing.T, s *Store, recipes ...models.Recipe) []models.Recipe {
	t.Helper()

	for i := range recipes {
		require.NoError(t, s.CreateRecipe(context.Background(), &recipes[i]), "failed to seed recipe")
	}

	return recipes
}

func TestNewNilDB(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, store.ErrDBNil)
}

func TestDialector(t *testing.T) {
	testCases := []struct {
		name    string
		engine  store.Engine
		wantErr bool
	}{
		{name: "sqlite", engine: store.EngineSQLite},
		{name: "mysql", engine: store.EngineMySQL},
		{name: "postgres", engine: store.EnginePostgres},
		{name: "mongodb is not sql", engine: store.EngineMongoDB, wantErr: true},
		{name: "unknown", engine: "oracle", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Dialector(tc.engine, "dsn")
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedEngine)
				assert.Nil(t, d)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, d)
		})
	}
}

func TestCategories(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	categories := []models.Category{
		{Name: "Thai", Image: "thai-food.jpg"},
		{Name: "American", Image: "american-food.jpg"},
		{Name: "Chinese", Image: "chinese-food.jpg"},
	}
	require.NoError(t, s.CreateCategories(ctx, categories))

	for _, c := range categories {
		assert.NotEmpty(t, c.ID)
	}

	got, err := s.Categories(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Thai", got[0].Name)
	assert.Equal(t, "American", got[1].Name)

	exists, err := s.CategoryExists(ctx, "Chinese")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.CategoryExists(ctx, "chinese")
	require.NoError(t, err)
	assert.False(t, exists, "category names are case-sensitive")
}

func TestRecipesByCategory(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedRecipes(t, s,
		models.Recipe{Name: "Thai green curry", Category: "Thai"},
		models.Recipe{Name: "Crab cakes", Category: "American"},
		models.Recipe{Name: "Tom yum soup", Category: "Thai"},
		models.Recipe{Name: "Pad thai", Category: "thai"},
	)

	testCases := []struct {
		name     string
		category string
		limit    int
		want     []string
	}{
		{name: "exact match", category: "Thai", limit: 20, want: []string{"Thai green curry", "Tom yum soup"}},
		{name: "case-sensitive", category: "thai", limit: 20, want: []string{"Pad thai"}},
		{name: "limit applies", category: "Thai", limit: 1, want: []string{"Thai green curry"}},
		{name: "unknown category is empty", category: "Klingon", limit: 20, want: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recipes, err := s.RecipesByCategory(ctx, tc.category, tc.limit)
			require.NoError(t, err)
			require.NotNil(t, recipes)

			names := make([]string, 0, len(recipes))
			for _, r := range recipes {
				assert.Equal(t, tc.category, r.Category)
				names = append(names, r.Name)
			}

			assert.Equal(t, tc.want, names)
		})
	}
}

func TestLatestRecipes(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	recipes, err := s.LatestRecipes(ctx, 20)
	require.NoError(t, err)
	assert.Empty(t, recipes, "empty store")

	seedRecipes(t, s, models.Recipe{Name: "first"})

	recipes, err = s.LatestRecipes(ctx, 20)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "first", recipes[0].Name)

	seedRecipes(t, s, models.Recipe{Name: "second"}, models.Recipe{Name: "third"})

	recipes, err = s.LatestRecipes(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "third", recipes[0].Name)
	assert.Equal(t, "second", recipes[1].Name)
}

func TestRecipe(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seeded := seedRecipes(t, s, models.Recipe{
		Name:        "Chinese steak & tofu stew",
		Email:       "recipeemail@example.com",
		Ingredients: []string{"250g rump or sirloin steak", "2 cloves of garlic"},
		Category:    "Chinese",
		Image:       "chinese-steak-tofu.jpg",
	})

	got, err := s.Recipe(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, seeded[0], *got)

	for _, id := range []string{"", "abc", "-1", "999"} {
		_, err = s.Recipe(ctx, id)
		require.ErrorIs(t, err, store.ErrNotFound, "id %q", id)
	}
}

func TestCreateRecipeStoresSingleIngredientAsList(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seeded := seedRecipes(t, s,
		models.Recipe{Name: "Toast", Ingredients: []string{"bread"}},
		models.Recipe{Name: "Water"},
	)

	got, err := s.Recipe(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"bread"}, got.Ingredients)

	got, err = s.Recipe(ctx, seeded[1].ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Ingredients)
	assert.Empty(t, got.Ingredients)
}

func TestSearchRecipes(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedRecipes(t, s,
		models.Recipe{Name: "Thai green curry", Description: "Fragrant coconut sauce"},
		models.Recipe{Name: "Crab cakes", Description: "Golden and crispy"},
		models.Recipe{Name: "Katsu", Description: "Japanese CURRY with rice"},
		models.Recipe{Name: "Crème brûlée", Description: "Custard"},
		models.Recipe{Name: "100% juice", Description: "Just oranges"},
		models.Recipe{Name: "Éclair au chocolat", Description: "Choux pastry with a chocolate glaze"},
	)

	testCases := []struct {
		name string
		term string
		want []string
	}{
		{name: "empty term", term: "", want: []string{}},
		{name: "whitespace term", term: "   ", want: []string{}},
		{name: "single word", term: "curry", want: []string{"Katsu", "Thai green curry"}},
		{name: "any word matches", term: "crispy custard", want: []string{"Crème brûlée", "Crab cakes"}},
		{name: "diacritic-sensitive", term: "creme", want: []string{}},
		{name: "accented term", term: "brûlée", want: []string{"Crème brûlée"}},
		{name: "capitalised accented term", term: "Éclair", want: []string{"Éclair au chocolat"}},
		{name: "lowercase term matches capitalised accent", term: "éclair", want: []string{"Éclair au chocolat"}},
		{name: "uppercase accented term", term: "CRÈME", want: []string{"Crème brûlée"}},
		{name: "accent is not folded", term: "eclair", want: []string{}},
		{name: "like wildcards are literal", term: "%", want: []string{"100% juice"}},
		{name: "no match", term: "pizza", want: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recipes, err := s.SearchRecipes(ctx, tc.term)
			require.NoError(t, err)

			names := make([]string, 0, len(recipes))
			for _, r := range recipes {
				names = append(names, r.Name)
			}

			assert.Equal(t, tc.want, names)
		})
	}
}

func TestSearchTextIsBackfilled(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	// rows written before the search column existed
	require.NoError(t, s.db.Create(&RecipeRow{Name: "Éclair au café", Ingredients: []string{}}).Error)

	recipes, err := s.SearchRecipes(ctx, "éclair")
	require.NoError(t, err)
	assert.Empty(t, recipes)

	s2, err := New(s.db)
	require.NoError(t, err)

	recipes, err = s2.SearchRecipes(ctx, "éclair")
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Éclair au café", recipes[0].Name)
}

func TestCountAndRecipeAt(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	count, err := s.CountRecipes(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = s.RecipeAt(ctx, 0)
	require.ErrorIs(t, err, store.ErrNotFound)

	seeded := seedRecipes(t, s, models.Recipe{Name: "a"}, models.Recipe{Name: "b"}, models.Recipe{Name: "c"})

	count, err = s.CountRecipes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	for i, want := range seeded {
		got, err := s.RecipeAt(ctx, int64(i))
		require.NoError(t, err, "offset %d", i)
		assert.Equal(t, want.ID, got.ID)
	}

	_, err = s.RecipeAt(ctx, 3)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRandomRecipeOverSQL(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := store.RandomRecipe(ctx, s)
	require.ErrorIs(t, err, store.ErrNotFound)

	seeded := seedRecipes(t, s, models.Recipe{Name: "a"}, models.Recipe{Name: "b"})
	ids := []string{seeded[0].ID, seeded[1].ID}

	for range 10 {
		got, err := store.RandomRecipe(ctx, s)
		require.NoError(t, err)
		assert.Contains(t, ids, got.ID)
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "a!%b!_c!!d", escapeLike("a%b_c!d"))
	assert.Equal(t, "curry", escapeLike("curry"))
}

func TestIDsAreMonotonic(t *testing.T) {
	s := setupTestStore(t)

	seeded := seedRecipes(t, s, models.Recipe{Name: "a"}, models.Recipe{Name: "b"})

	first, err := strconv.ParseUint(seeded[0].ID, 10, 64)
	require.NoError(t, err)

	second, err := strconv.ParseUint(seeded[1].ID, 10, 64)
	require.NoError(t, err)

	assert.Greater(t, second, first)
}
