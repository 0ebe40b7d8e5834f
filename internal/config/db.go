package config

// DB holds the database configuration settings.
type DB struct {
	Engine   string // mongodb, sqlite, mysql or postgres
	URI      string // mongodb connection string, overridden by MONGODB_URI
	Name     string // database name
	Path     string // sqlite database file
	Extras   string // extra dsn parameters for mysql and postgres
	Host     string
	Port     int
	User     string
	Password string
}
