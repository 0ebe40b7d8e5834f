package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/main"

	// RootPath is the root path of the site.
	RootPath = "/"

	// RouterRootPath is the root path inside a route group.
	RouterRootPath = ""

	// HomeLimit is the number of items per group on the home page.
	HomeLimit = 5

	// ListLimit is the number of items on listing pages.
	ListLimit = 20

	// ErrNilACDFatalLogMsg is used if app, cfg or store is nil.
	ErrNilACDFatalLogMsg = "app, cfg or store is nil"
)
