package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettings_MissingFileUsesDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestLoadSettings_OverlaysFileValues(t *testing.T) {
	path := writeConfig(t, `
[app]
lag_days = 7
n_workers = 2

[forum]
page_size = 25

[llm]
model = "openai/gpt-4o"
`)

	settings, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, 7, settings.App.LagDays)
	assert.Equal(t, 2, settings.App.NWorkers)
	assert.Equal(t, 25, settings.Forum.PageSize)
	assert.Equal(t, "openai/gpt-4o", settings.LLM.Model)
	// Values the file leaves out keep their defaults.
	assert.Equal(t, "data", settings.App.DataDir)
	assert.Equal(t, 2000, settings.App.MaxRecs)
	assert.Equal(t, 1.2, settings.Forum.RequestsPerSec)
}

func TestLoadSettings_InvalidTOML(t *testing.T) {
	path := writeConfig(t, `[app`)

	_, err := LoadSettings(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLoadSettings_RejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
[app]
max_recs = 0
`)

	_, err := LoadSettings(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
