package submit

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/GoCookingBlog/GoCookingBlog/internal/db/models"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/store"
)

// Form is the recipe submission form.
type Form struct {
	Name        string   `form:"name"        validate:"required,max=255"`
	Description string   `form:"description" validate:"required"`
	Email       string   `form:"email"       validate:"required,email,max=255"`
	Ingredients []string `form:"ingredients" validate:"min=1,dive,max=255"`
	Category    string   `form:"category"    validate:"required,max=100"`
}

// Normalize trims the text fields and turns ingredients into one entry per line.
func (f *Form) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Email = strings.TrimSpace(f.Email)
	f.Category = strings.TrimSpace(f.Category)
	f.Ingredients = models.NormalizeIngredients(f.Ingredients)
}

// Recipe builds the recipe to store, image is the stored upload or empty.
func (f *Form) Recipe(image string) *models.Recipe {
	return &models.Recipe{
		Name:        f.Name,
		Description: f.Description,
		Email:       f.Email,
		Ingredients: f.Ingredients,
		Category:    f.Category,
		Image:       image,
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report form field names instead of struct field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	return v
}

// validate checks f and that its category exists in st.
// Rule violations are reported as *ValidationError, store failures are returned as is.
func validate(ctx context.Context, v *validator.Validate, st store.Store, f *Form) error {
	var messages []string

	if err := v.Struct(f); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}

		for _, fe := range validationErrors {
			messages = append(messages, message(fe))
		}
	}

	if f.Category != "" {
		exists, err := st.CategoryExists(ctx, f.Category)
		if err != nil {
			return err
		}

		if !exists {
			messages = append(messages, "Category '"+f.Category+"' does not exist")
		}
	}

	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}

	return nil
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	if strings.HasPrefix(field, "ingredients[") {
		field = "ingredients"
	}

	switch fe.Tag() {
	case "required":
		return "Field '" + field + "' is required"
	case "email":
		return "Field '" + field + "' must be a valid email address"
	case "min":
		return "At least one ingredient is required"
	case "max":
		return "Field '" + field + "' is too long"
	default:
		return "Field '" + field + "' failed validation tag '" + fe.Tag() + "'"
	}
}
