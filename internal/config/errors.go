package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrInvalidPort error if the webserver listening port is out of range.
	ErrInvalidPort = errors.New("toml config webserver.port must be between 1 and 65535")

	// ErrUnknownDBEngine error if db.engine names no supported backend.
	ErrUnknownDBEngine = errors.New("toml config db.engine must be one of mongodb, sqlite, mysql, postgres")

	// ErrEmptyMongoURI error if the mongodb engine is selected without a connection string.
	ErrEmptyMongoURI = errors.New("toml config db.uri or MONGODB_URI can not be empty for engine mongodb")

	// ErrEmptyDBName error if no database name is configured for a server engine.
	ErrEmptyDBName = errors.New("toml config db.name can not be empty")

	// ErrUnknownUploadBackend error if upload.backend names no supported storage.
	ErrUnknownUploadBackend = errors.New("toml config upload.backend must be one of local, s3")

	// ErrEmptyS3Bucket error if the s3 upload backend is selected without a bucket.
	ErrEmptyS3Bucket = errors.New("toml config upload.s3.bucket can not be empty for backend s3")
)
