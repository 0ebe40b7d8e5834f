package daemon

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/GoCookingBlog/GoCookingBlog/internal/db/models"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/store"
)

const seedEmail = "recipes@cookingblog.example"

// SeedResult reports what Seed inserted.
type SeedResult struct {
	Categories int
	Recipes    int
}

// Seed fills an empty store with the default categories and a few sample recipes.
// Categories and recipes are only inserted when none exist yet.
func Seed(ctx context.Context, st store.Store) (SeedResult, error) {
	var result SeedResult

	existing, err := st.Categories(ctx, 1)
	if err != nil {
		return result, fmt.Errorf("seed: list categories: %w", err)
	}

	if len(existing) == 0 {
		categories := defaultCategories()
		if err = st.CreateCategories(ctx, categories); err != nil {
			return result, fmt.Errorf("seed: create categories: %w", err)
		}

		result.Categories = len(categories)
	}

	count, err := st.CountRecipes(ctx)
	if err != nil {
		return result, fmt.Errorf("seed: count recipes: %w", err)
	}

	if count == 0 {
		for _, recipe := range sampleRecipes() {
			if err = st.CreateRecipe(ctx, &recipe); err != nil {
				return result, fmt.Errorf("seed: create recipe %q: %w", recipe.Name, err)
			}

			result.Recipes++
		}
	}

	log.Info().
		Int("categories", result.Categories).
		Int("recipes", result.Recipes).
		Msg("seed finished")

	return result, nil
}

func defaultCategories() []models.Category {
	names := []string{"Thai", "American", "Chinese", "Mexican", "Indian", "Spanish"}

	// seeded records carry no image, pages show the placeholder until one is uploaded
	out := make([]models.Category, 0, len(names))
	for _, name := range names {
		out = append(out, models.Category{Name: name})
	}

	return out
}

func sampleRecipes() []models.Recipe {
	return []models.Recipe{
		{
			Name:        "Chinese steak & tofu stew",
			Description: "A light and warming beef stew with silken tofu, ginger and Szechuan pepper.",
			Email:       seedEmail,
			Ingredients: []string{
				"250g rump steak",
				"2 cloves of garlic",
				"4cm piece of ginger",
				"1 bunch of spring onions",
				"1 teaspoon Szechuan peppercorns",
				"2 tablespoons chilli bean paste",
				"1 litre vegetable stock",
				"350g silken tofu",
			},
			Category: "Chinese",
		},
		{
			Name:        "Crab cakes",
			Description: "Golden crab and potato cakes with parsley, served with tartare sauce.",
			Email:       seedEmail,
			Ingredients: []string{
				"3 spring onions",
				"1 bunch of flat-leaf parsley",
				"1 large egg",
				"750g cooked crabmeat",
				"300g mashed potatoes",
				"1 teaspoon cayenne pepper",
				"plain flour, for dusting",
			},
			Category: "American",
		},
		{
			Name:        "Key lime pie",
			Description: "A crisp biscuit base filled with a sharp and creamy lime custard.",
			Email:       seedEmail,
			Ingredients: []string{
				"4 egg yolks",
				"400ml condensed milk",
				"5 limes",
				"200ml double cream",
				"135g unsalted butter",
				"12 digestive biscuits",
			},
			Category: "American",
		},
		{
			Name:        "Thai green curry",
			Description: "A fragrant coconut curry with chicken, green beans and Thai basil.",
			Email:       seedEmail,
			Ingredients: []string{
				"1 tablespoon vegetable oil",
				"2 tablespoons green curry paste",
				"400ml coconut milk",
				"4 chicken thighs",
				"100g green beans",
				"1 handful of Thai basil",
				"1 tablespoon fish sauce",
			},
			Category: "Thai",
		},
		{
			Name:        "Tom yum soup",
			Description: "A hot and sour prawn soup with lemongrass, galangal and lime leaves.",
			Email:       seedEmail,
			Ingredients: []string{
				"1 litre chicken stock",
				"2 stalks of lemongrass",
				"5 slices of galangal",
				"4 kaffir lime leaves",
				"200g raw king prawns",
				"2 tablespoons lime juice",
				"1 red chilli",
			},
			Category: "Thai",
		},
		{
			Name:        "Spring rolls",
			Description: "Crisp vegetable spring rolls with a sweet chilli dipping sauce.",
			Email:       seedEmail,
			Ingredients: []string{
				"12 spring roll wrappers",
				"100g rice noodles",
				"1 carrot",
				"100g bean sprouts",
				"2 spring onions",
				"1 tablespoon soy sauce",
			},
			Category: "Chinese",
		},
	}
}
