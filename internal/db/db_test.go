package db

import (
	"path/filepath"
	"testing"

	"github.com/pokerjest/animateRenamer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_RoundTrip(t *testing.T) {
	require.NoError(t, InitDB(":memory:"))
	defer CloseDB()

	_, ok := GetSetting(model.ConfigKeyTVDBApiKey)
	assert.False(t, ok)

	require.NoError(t, SetSetting(model.ConfigKeyTVDBApiKey, "abc"))
	require.NoError(t, SetSetting(model.ConfigKeyTVDBApiKey, "def"))
	require.NoError(t, SetSetting(model.ConfigKeyLastDirectory, "/media"))

	v, ok := GetSetting(model.ConfigKeyTVDBApiKey)
	assert.True(t, ok)
	assert.Equal(t, "def", v)

	all, err := AllSettings()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		model.ConfigKeyTVDBApiKey:    "def",
		model.ConfigKeyLastDirectory: "/media",
	}, all)
}

func TestInitDB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "renamer.db")
	require.NoError(t, InitDB(path))
	defer CloseDB()

	require.NoError(t, SetSetting(model.ConfigKeyDefaultProvider, "jikan"))
	assert.FileExists(t, path)
}

func TestNoDatabase(t *testing.T) {
	CloseDB()
	_, ok := GetSetting("x")
	assert.False(t, ok)
	assert.Error(t, SetSetting("x", "y"))
}
