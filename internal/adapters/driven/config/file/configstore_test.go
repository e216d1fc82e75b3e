package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry-labs/corrag/internal/core/domain"
)

func TestSettingsStore_LoadMissingFileReturnsDefaults(t *testing.T) {
	store, err := NewSettingsStore(t.TempDir())
	require.NoError(t, err)

	settings, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultAppSettings(), settings)
	assert.True(t, settings.EnableCorrection)
}

func TestSettingsStore_RoundTrip(t *testing.T) {
	store, err := NewSettingsStore(t.TempDir())
	require.NoError(t, err)

	original := domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider: domain.AIProviderOpenRouter,
			Models:   []string{"text-embedding-3-small"},
			APIKey:   "sk-or-test",
		},
		LLM: domain.LLMSettings{
			Provider: domain.AIProviderOpenRouter,
			Model:    domain.DefaultCompletionModel,
			APIKey:   "sk-or-test",
		},
		EnableCorrection: false,
	}
	require.NoError(t, store.Save(original))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestSettingsStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSettingsStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(domain.DefaultAppSettings()))

	info, err := os.Stat(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSettingsStore_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSettingsStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid toml"), 0600))

	_, err = store.Load()
	assert.Error(t, err)
}
