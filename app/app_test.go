package app

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoCookingBlog/GoCookingBlog/internal/config"
)

func etcDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.Abs("../etc")
	require.NoError(t, err)

	return dir + string(filepath.Separator)
}

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	return out.String()
}

func TestConfigCommand(t *testing.T) {
	t.Setenv(config.EnvConfigJSON, "")
	t.Setenv(config.EnvMongoURI, "")
	t.Setenv(config.EnvPort, "")

	out := run(t, "config", "--config", etcDir(t))
	assert.Contains(t, out, "mongodb://localhost:27017")

	out = run(t, "config", "--json", "--config", etcDir(t))
	assert.Contains(t, out, `"Engine": "mongodb"`)
}

func TestSeedCommand(t *testing.T) {
	t.Setenv(config.EnvMongoURI, "")
	t.Setenv(config.EnvPort, "")
	t.Setenv(config.EnvConfigJSON, `{"DB":{"Engine":"sqlite","Path":"`+filepath.ToSlash(filepath.Join(t.TempDir(), "seed.db"))+`"}}`)

	out := run(t, "seed", "--config", etcDir(t))
	assert.Contains(t, out, "inserted 6 categories")

	out = run(t, "seed", "--config", etcDir(t))
	assert.Contains(t, out, "inserted 0 categories and 0 recipes")
}
