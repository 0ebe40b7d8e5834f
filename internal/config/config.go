// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	// EnvConfigJSON holds a JSON document merged over the TOML configuration.
	EnvConfigJSON = "GO_COOKING_BLOG_CONFIG_JSON"
	// EnvMongoURI overrides DB.URI.
	EnvMongoURI = "MONGODB_URI"
	// EnvPort overrides Webserver.Port.
	EnvPort = "PORT"

	// DefaultPort is used when neither the config file nor PORT set a port.
	DefaultPort = 3000

	defaultShutDownTime   = 5
	defaultRequestTimeout = 10 * time.Second
	defaultSessionExpiry  = 24 * time.Hour
	defaultUploadDir      = "./public/uploads"
	defaultUploadURLPath  = "/uploads"
	defaultDBName         = "cookingblog"
	defaultSQLitePath     = "cookingblog.db"
	defaultTitle          = "Cooking Blog"
)

// ReadConfig from config file.
// A .env file in the working directory is loaded first, if present.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	if err = godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, errors.Wrap(err, "failed to read .env file")
	}

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	if err = applyEnv(&c); err != nil {
		return c, err
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read json config from env")
	}

	return c, nil
}

// applyEnv applies the MONGODB_URI and PORT overrides.
func applyEnv(c *Config) error {
	if uri := os.Getenv(EnvMongoURI); uri != "" {
		c.DB.URI = uri
	}

	if port := os.Getenv(EnvPort); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return errors.Wrapf(err, "invalid %s %q", EnvPort, port)
		}

		c.Webserver.Port = p
	}

	return nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate fills in defaults and checks the settings the daemon can not start without.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	setDefaults(c)

	if c.Webserver.Port < 1 || c.Webserver.Port > 65535 {
		return errors.Wrap(ErrInvalidPort, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	switch c.DB.Engine {
	case "mongodb":
		if c.DB.URI == "" {
			return errors.Wrap(ErrEmptyMongoURI, invalidErrMessage)
		}
	case "sqlite":
	case "mysql", "postgres":
		if c.DB.Name == "" {
			return errors.Wrap(ErrEmptyDBName, invalidErrMessage)
		}
	default:
		return errors.Wrap(ErrUnknownDBEngine, invalidErrMessage)
	}

	switch c.Upload.Backend {
	case "local":
	case "s3":
		if c.Upload.S3.Bucket == "" {
			return errors.Wrap(ErrEmptyS3Bucket, invalidErrMessage)
		}
	default:
		return errors.Wrap(ErrUnknownUploadBackend, invalidErrMessage)
	}

	return nil
}

func setDefaults(c *Config) {
	if c.Title == "" {
		c.Title = defaultTitle
	}

	if c.Webserver.Port == 0 {
		c.Webserver.Port = DefaultPort
	}

	if c.Webserver.URL == "" {
		c.Webserver.URL = "http://localhost:" + strconv.Itoa(c.Webserver.Port)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.RequestTimeout == 0 {
		c.Webserver.RequestTimeout = defaultRequestTimeout
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionExpiry
	}

	if c.DB.Engine == "" {
		c.DB.Engine = "mongodb"
	}

	if c.DB.Name == "" && c.DB.Engine == "mongodb" {
		c.DB.Name = defaultDBName
	}

	if c.DB.Path == "" && c.DB.Engine == "sqlite" {
		c.DB.Path = defaultSQLitePath
	}

	if c.Upload.Backend == "" {
		c.Upload.Backend = "local"
	}

	if c.Upload.Dir == "" {
		c.Upload.Dir = defaultUploadDir
	}

	if c.Upload.URLPath == "" {
		c.Upload.URLPath = defaultUploadURLPath
	}
}
