package config

import (
	"time"

	"github.com/GoCookingBlog/GoCookingBlog/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration // idle time after which a session and its flash messages expire
	CookieName string
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string // site title, prefixed to every page title
	Webserver Webserver
	Upload    Upload
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool          // enable static file browsing (for development purposes only)
	Port           int           // listening port for the webserver, overridden by PORT
	ShutDownTime   int           // seconds to report not alive before shutting down
	URL            string        // base url for the webserver
	RequestTimeout time.Duration // deadline for the store calls of one request
	Session        Session       // session settings
}

// Upload implements the recipe image storage settings.
type Upload struct {
	Backend string // local or s3
	Dir     string // target directory for the local backend
	URLPath string // path the local directory is served under
	S3      S3
}

// S3 implements the settings of the s3 upload backend.
type S3 struct {
	Bucket    string
	Region    string
	Prefix    string // key prefix, e.g. "uploads/"
	PublicURL string // base url the objects are served from, e.g. a CloudFront distribution
}
