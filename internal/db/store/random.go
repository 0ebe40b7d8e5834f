package store

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/GoCookingBlog/GoCookingBlog/internal/db/models"
)

// randomPickAttempts bounds how often a pick is retried when the collection
// shrinks between counting and fetching.
const randomPickAttempts = 3

// RandomRecipe picks one recipe uniformly at random.
// It counts the recipes, draws an offset in [0, count) and fetches the recipe at that offset.
// An empty collection yields ErrNotFound.
func RandomRecipe(ctx context.Context, s Store) (*models.Recipe, error) {
	if s == nil {
		return nil, ErrDBNil
	}

	for range randomPickAttempts {
		count, err := s.CountRecipes(ctx)
		if err != nil {
			return nil, err
		}

		if count <= 0 {
			return nil, ErrNotFound
		}

		recipe, err := s.RecipeAt(ctx, rand.Int64N(count)) //nolint:gosec // not security relevant
		if errors.Is(err, ErrNotFound) {
			continue
		}

		return recipe, err
	}

	return nil, ErrNotFound
}
