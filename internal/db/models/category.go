// Package models contains the domain records shared by the store implementations and the web handlers.
package models

// Category represents a cuisine used to group recipes (e.g. "Thai").
// Categories are created by the seed command and never changed through the web surface.
type Category struct {
	// ID is the store assigned identifier in its string form.
	ID string `json:"id"`
	// Name is the short label recipes refer to by their Category field.
	Name string `json:"name"`
	// Image is the filename of a representative image.
	Image string `json:"image"`
}
