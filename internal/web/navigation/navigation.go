// Package navigation builds the page title, the active menu entry and the breadcrumbs of a page.
package navigation

// Menu sections of the site.
const (
	SectionHome       = "home"
	SectionCategories = "categories"
	SectionLatest     = "explore-latest"
	SectionRandom     = "explore-random"
	SectionSubmit     = "submit-recipe"
	SectionSearch     = "search"

	homeTitle = "Home"
	homeURL   = "/"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
}

// NewContext creates a navigation context starting with a breadcrumb to the home page.
// The home page itself gets no breadcrumbs.
func NewContext(pageTitle, activeSection string) *Context {
	ctx := &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}

	if activeSection != SectionHome {
		ctx.AddBreadcrumb(homeTitle, homeURL)
	}

	return ctx
}

// AddBreadcrumb appends a link to the breadcrumbs.
func (c *Context) AddBreadcrumb(title, url string) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{Title: title, URL: url})

	return c
}

// Current appends the breadcrumb of the page being shown.
func (c *Context) Current(title string) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{Title: title, Active: true})

	return c
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
