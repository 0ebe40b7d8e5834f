package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext("Categories", SectionCategories)

	assert.Equal(t, "Categories", ctx.PageTitle)
	assert.Equal(t, SectionCategories, ctx.ActiveSection)
	assert.Equal(t, []BreadcrumbItem{{Title: "Home", URL: "/"}}, ctx.Breadcrumbs)
}

func TestNewContextHome(t *testing.T) {
	ctx := NewContext("Cooking Blog", SectionHome)

	assert.NotNil(t, ctx.Breadcrumbs)
	assert.Empty(t, ctx.Breadcrumbs)
}

func TestContext_Chaining(t *testing.T) {
	ctx := NewContext("Tom yum soup", SectionCategories).
		AddBreadcrumb("Categories", "/categories").
		AddBreadcrumb("Thai", "/categories/Thai").
		Current("Tom yum soup")

	assert.Len(t, ctx.Breadcrumbs, 4)
	assert.Equal(t, "Categories", ctx.Breadcrumbs[1].Title)
	assert.Equal(t, "/categories/Thai", ctx.Breadcrumbs[2].URL)
	assert.False(t, ctx.Breadcrumbs[2].Active)
	assert.True(t, ctx.Breadcrumbs[3].Active)
	assert.Empty(t, ctx.Breadcrumbs[3].URL)
}

func TestContext_IsSectionActive(t *testing.T) {
	ctx := NewContext("Latest", SectionLatest)

	assert.True(t, ctx.IsSectionActive(SectionLatest))
	assert.False(t, ctx.IsSectionActive(SectionRandom))
	assert.False(t, ctx.IsSectionActive(SectionHome))
}
