package daemon

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoCookingBlog/GoCookingBlog/internal/config"
	"github.com/GoCookingBlog/GoCookingBlog/internal/db/sqldb"
)

func TestNewNilConfig(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrConfigNil)
}

func TestOpenStoreSQLite(t *testing.T) {
	cfg := &config.Config{DB: config.DB{Engine: "sqlite", Path: filepath.Join(t.TempDir(), "blog.db")}}

	st, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)

	t.Cleanup(func() { _ = st.Close(context.Background()) })

	_, err = Seed(context.Background(), st)
	require.NoError(t, err)

	count, err := st.CountRecipes(context.Background())
	require.NoError(t, err)
	assert.Positive(t, count)
}

func TestOpenStoreUnknownEngine(t *testing.T) {
	_, err := OpenStore(context.Background(), &config.Config{DB: config.DB{Engine: "oracle"}})
	require.ErrorIs(t, err, sqldb.ErrUnsupportedEngine)
}

func TestSQLiteSessionsStayInMemory(t *testing.T) {
	assert.Nil(t, newSessionStorage(&config.Config{DB: config.DB{Engine: "sqlite"}}))
}

func TestNewSQLite(t *testing.T) {
	cfg := &config.Config{
		Title: "Cooking Blog",
		DB:    config.DB{Engine: "sqlite", Path: filepath.Join(t.TempDir(), "blog.db")},
		Upload: config.Upload{
			Backend: "local",
			Dir:     filepath.Join(t.TempDir(), "uploads"),
			URLPath: "/uploads",
		},
	}

	d, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, d.webService)

	t.Cleanup(func() { closeStore(d.store) })
}
