package search

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoCookingBlog/GoCookingBlog/internal/db/models"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/store"
	"github.com/GoCookingBlog/GoCookingBlog/internal/web/handler/handlertest"
)

// countingStore records how often SearchRecipes is called.
type countingStore struct {
	store.Store
	searches int
}

func (s *countingStore) SearchRecipes(ctx context.Context, term string) ([]models.Recipe, error) {
	s.searches++

	return s.Store.SearchRecipes(ctx, term)
}

func post(t *testing.T, app *fiber.App, term string) {
	t.Helper()

	form := url.Values{FormField: {term}}
	req := httptest.NewRequest(fiber.MethodPost, Path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPost(t *testing.T) {
	db := handlertest.NewStore(t)
	handlertest.SeedRecipes(t, db,
		models.Recipe{Name: "Thai green curry", Description: "coconut"},
		models.Recipe{Name: "Crab cakes", Description: "crispy"},
		models.Recipe{Name: "Katsu", Description: "Japanese curry"},
	)

	st := &countingStore{Store: db}
	app, views := handlertest.NewApp()
	s := &Service{}
	s.Init(app, handlertest.NewConfig(), st)

	testCases := []struct {
		name         string
		term         string
		wantTerm     string
		want         []string
		wantSearches int
	}{
		{name: "matches", term: "curry", wantTerm: "curry", want: []string{"Katsu", "Thai green curry"}, wantSearches: 1},
		{name: "term is trimmed", term: "  crispy ", wantTerm: "crispy", want: []string{"Crab cakes"}, wantSearches: 1},
		{name: "no match", term: "pizza", wantTerm: "pizza", want: []string{}, wantSearches: 1},
		{name: "empty term skips the store", term: "", want: []string{}},
		{name: "blank term skips the store", term: " \t ", want: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st.searches = 0

			post(t, app, tc.term)

			r := views.Last(t)
			assert.Equal(t, TemplateName, r.Name)
			assert.Equal(t, tc.wantTerm, r.Data["SearchTerm"])
			assert.Equal(t, tc.wantSearches, st.searches)

			recipes, ok := r.Data["Recipes"].([]models.Recipe)
			require.True(t, ok)

			got := make([]string, 0, len(recipes))
			for _, recipe := range recipes {
				got = append(got, recipe.Name)
			}

			assert.Equal(t, tc.want, got)
		})
	}
}
