package models

import "strings"

// Recipe represents a recipe shown on the site.
type Recipe struct {
	// ID is the store assigned identifier in its string form.
	// Identifiers grow with creation time, so ordering by ID descending lists the latest recipes first.
	ID string `json:"id"`
	// Name is the recipe title.
	Name string `json:"name"`
	// Description is free text.
	Description string `json:"description"`
	// Email is the contact address of the submitter.
	Email string `json:"email"`
	// Ingredients holds one ingredient per line, in submission order.
	Ingredients []string `json:"ingredients"`
	// Category is the name of the category this recipe belongs to.
	// It is matched against Category.Name as an exact, case-sensitive string.
	Category string `json:"category"`
	// Image is the filename of the uploaded or seeded image, empty if there is none.
	Image string `json:"image,omitempty"`
}

// NormalizeIngredients turns the raw form values of the ingredients field into an ordered list.
// Every value is split on line breaks, lines are trimmed and blank lines dropped.
// The result is never nil, so a single ingredient is still stored as a list.
func NormalizeIngredients(values []string) []string {
	out := make([]string, 0, len(values))

	for _, value := range values {
		for _, line := range strings.Split(value, "\n") {
			line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
			if line != "" {
				out = append(out, line)
			}
		}
	}

	return out
}
