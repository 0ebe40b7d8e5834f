package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testConfigPath(t *testing.T) string {
	t.Helper()

	// Get the project root by going up from internal/config
	projectRoot, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	t.Setenv(EnvMongoURI, "")
	t.Setenv(EnvPort, "")
	t.Setenv(EnvConfigJSON, "")

	cfg, err := ReadConfig(testConfigPath(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port != DefaultPort {
		t.Errorf("Webserver.Port = %d, want %d", cfg.Webserver.Port, DefaultPort)
	}

	if cfg.Webserver.RequestTimeout != 10*time.Second {
		t.Errorf("Webserver.RequestTimeout = %v, want 10s", cfg.Webserver.RequestTimeout)
	}

	if cfg.Webserver.Session.ExpiryTime != 24*time.Hour {
		t.Errorf("Webserver.Session.ExpiryTime = %v, want 24h", cfg.Webserver.Session.ExpiryTime)
	}

	if cfg.DB.Engine != "mongodb" {
		t.Errorf("DB.Engine = %q, want mongodb", cfg.DB.Engine)
	}

	if cfg.DB.URI == "" {
		t.Error("DB.URI should not be empty")
	}

	if cfg.Upload.Backend != "local" || cfg.Upload.Dir == "" {
		t.Errorf("unexpected upload config: %+v", cfg.Upload)
	}
}

func TestReadConfigEnvOverrides(t *testing.T) {
	t.Setenv(EnvConfigJSON, "")
	t.Setenv(EnvMongoURI, "mongodb://db.internal:27017")
	t.Setenv(EnvPort, "8081")

	cfg, err := ReadConfig(testConfigPath(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.DB.URI != "mongodb://db.internal:27017" {
		t.Errorf("DB.URI = %q, want value of %s", cfg.DB.URI, EnvMongoURI)
	}

	if cfg.Webserver.Port != 8081 {
		t.Errorf("Webserver.Port = %d, want 8081", cfg.Webserver.Port)
	}
}

func TestReadConfigInvalidPortEnv(t *testing.T) {
	t.Setenv(EnvConfigJSON, "")
	t.Setenv(EnvPort, "http")

	if _, err := ReadConfig(testConfigPath(t)); err == nil {
		t.Fatal("expected error for non numeric PORT")
	}
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	t.Setenv(EnvMongoURI, "")
	t.Setenv(EnvPort, "")

	jsonOverride := `{"Title":"Test Override","Webserver":{"Port":9090},"DB":{"Engine":"sqlite","Path":"test.db"}}`
	t.Setenv(EnvConfigJSON, jsonOverride)

	cfg, err := ReadConfig(testConfigPath(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title != "Test Override" {
		t.Errorf("Title = %v, want %v", cfg.Title, "Test Override")
	}

	if cfg.Webserver.Port != 9090 {
		t.Errorf("Webserver.Port = %v, want %v", cfg.Webserver.Port, 9090)
	}

	if cfg.DB.Engine != "sqlite" || cfg.DB.Path != "test.db" {
		t.Errorf("DB = %+v, want sqlite engine with path test.db", cfg.DB)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	if _, err := ReadConfig(t.TempDir() + string(filepath.Separator)); err == nil {
		t.Fatal("expected error for missing main.toml")
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name: "valid mongodb config",
			config: Config{
				DB: DB{Engine: "mongodb", URI: "mongodb://localhost:27017"},
			},
		},
		{
			name:    "defaults to mongodb which needs an uri",
			config:  Config{},
			wantErr: ErrEmptyMongoURI,
		},
		{
			name: "port out of range",
			config: Config{
				DB:        DB{Engine: "sqlite"},
				Webserver: Webserver{Port: 70000},
			},
			wantErr: ErrInvalidPort,
		},
		{
			name: "unknown engine",
			config: Config{
				DB: DB{Engine: "oracle"},
			},
			wantErr: ErrUnknownDBEngine,
		},
		{
			name: "mysql needs a database name",
			config: Config{
				DB: DB{Engine: "mysql", Host: "localhost"},
			},
			wantErr: ErrEmptyDBName,
		},
		{
			name: "s3 needs a bucket",
			config: Config{
				DB:     DB{Engine: "sqlite"},
				Upload: Upload{Backend: "s3"},
			},
			wantErr: ErrEmptyS3Bucket,
		},
		{
			name: "unknown upload backend",
			config: Config{
				DB:     DB{Engine: "sqlite"},
				Upload: Upload{Backend: "ftp"},
			},
			wantErr: ErrUnknownUploadBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.config)

			switch {
			case tt.wantErr == nil && err != nil:
				t.Errorf("validate() error = %v, want nil", err)
			case tt.wantErr != nil && !errors.Is(err, tt.wantErr):
				t.Errorf("validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSetsDefaults(t *testing.T) {
	cfg := Config{DB: DB{Engine: "sqlite"}}

	if err := validate(&cfg); err != nil {
		t.Fatalf("validate() error = %v", err)
	}

	if cfg.Webserver.Port != DefaultPort {
		t.Errorf("Webserver.Port = %d, want %d", cfg.Webserver.Port, DefaultPort)
	}

	if cfg.Webserver.URL != "http://localhost:3000" {
		t.Errorf("Webserver.URL = %q", cfg.Webserver.URL)
	}

	if cfg.Webserver.ShutDownTime != defaultShutDownTime {
		t.Errorf("Webserver.ShutDownTime = %d", cfg.Webserver.ShutDownTime)
	}

	if cfg.Upload.Backend != "local" || cfg.Upload.URLPath != "/uploads" {
		t.Errorf("unexpected upload defaults: %+v", cfg.Upload)
	}
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
		DB: DB{Engine: "mongodb", URI: "mongodb://localhost:27017"},
	}

	tomlStr, err := DumpConfig(&cfg)
	if err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}

	if !strings.Contains(tomlStr, "Test") {
		t.Error("DumpConfig() output should contain Title")
	}

	if !strings.Contains(tomlStr, "mongodb://localhost:27017") {
		t.Error("DumpConfig() output should contain DB.URI")
	}
}

func TestDumpConfigJSON(t *testing.T) {
	cfg := Config{
		Title:   "Test",
		DevMode: true,
		Webserver: Webserver{
			Port: 8080,
			URL:  "http://localhost:8080",
		},
	}

	jsonStr, err := DumpConfigJSON(&cfg)
	if err != nil {
		t.Fatalf("DumpConfigJSON() error = %v", err)
	}

	if !strings.Contains(jsonStr, `"Title": "Test"`) {
		t.Errorf("DumpConfigJSON() output should contain Title, got %s", jsonStr)
	}
}
