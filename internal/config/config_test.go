package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	require.NoError(t, LoadConfig(""))
	require.NotNil(t, AppConfig)

	assert.Equal(t, 8306, AppConfig.Server.Port)
	assert.Equal(t, "release", AppConfig.Server.Mode)
	assert.Equal(t, "data/renamer.db", AppConfig.Database.Path)
	assert.Equal(t, 12, AppConfig.Grouping.ChunkSize)
	assert.Equal(t, "auto", AppConfig.Grouping.Strategy)
	assert.Equal(t, 1, AppConfig.Renumber.MinEpisode)
	assert.Equal(t, 10*time.Second, AppConfig.Metadata.Timeout)
	assert.Equal(t, "tvmaze", AppConfig.Metadata.DefaultProvider)
	assert.Contains(t, AppConfig.Library.VideoExtensions, "mkv")
	assert.Equal(t, 4, AppConfig.Scanner.SizeWorkers)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("RENAMER_SERVER_PORT", "9999")
	t.Setenv("RENAMER_RENUMBER_MIN_EPISODE", "0")

	require.NoError(t, LoadConfig(""))
	assert.Equal(t, 9999, AppConfig.Server.Port)
	assert.Equal(t, 0, AppConfig.Renumber.MinEpisode)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	yaml := "grouping:\n  chunk_size: 24\nmetadata:\n  timeout: 3s\n  tvdb_api_key: abc\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	require.NoError(t, LoadConfig(dir))
	assert.Equal(t, 24, AppConfig.Grouping.ChunkSize)
	assert.Equal(t, 3*time.Second, AppConfig.Metadata.Timeout)
	assert.Equal(t, "abc", AppConfig.Metadata.TVDBAPIKey)
}
