package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Data.Dir)
	assert.Equal(t, "notes", cfg.Data.Key)
	assert.Equal(t, "json", cfg.Data.Format)
	assert.False(t, cfg.Data.Ephemeral)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 100, cfg.Events.Buffer)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("JOT_TEST_HOME", "/srv/notes")
	path := writeFile(t, "jot.yaml", `
data:
  dir: ${JOT_TEST_HOME}/main
  format: yaml
logger:
  level: ${JOT_TEST_LEVEL:-debug}
events:
  buffer: 8
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/notes/main", cfg.Data.Dir)
	assert.Equal(t, "yaml", cfg.Data.Format)
	assert.Equal(t, "notes", cfg.Data.Key)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 8, cfg.Events.Buffer)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JOT_DATA_DIR", "/tmp/elsewhere")
	t.Setenv("JOT_LOGGER_LEVEL", "warn")

	path := writeFile(t, "jot.json", `{"data": {"dir": "/ignored"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/elsewhere", cfg.Data.Dir)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("Missing File", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("Invalid Values", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", `
data:
  format: xml
  key: a/b
logger:
  level: loud
events:
  buffer: -1
`)
		_, err := Load(path)
		require.Error(t, err)
		for _, field := range []string{"data.format", "data.key", "logger.level", "events.buffer"} {
			assert.ErrorContains(t, err, field)
		}
	})
}

func TestExpandEnvWithDefaults(t *testing.T) {
	t.Setenv("JOT_SET", "value")

	assert.Equal(t, "value", expandEnvWithDefaults("${JOT_SET}"))
	assert.Equal(t, "value", expandEnvWithDefaults("${JOT_SET:-fallback}"))
	assert.Equal(t, "fallback", expandEnvWithDefaults("${JOT_UNSET_FOR_TEST:-fallback}"))
	assert.Equal(t, "", expandEnvWithDefaults("${JOT_UNSET_FOR_TEST}"))
	assert.Equal(t, "plain", expandEnvWithDefaults("plain"))
}

func TestLevel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.SampledFrom([]string{"debug", "DEBUG", "info", "warn", "error", "Error"}).Draw(t, "level")
		cfg := Config{Logger: ConfigLogger{Level: name}}
		if _, err := cfg.Level(); err != nil {
			t.Fatalf("level %q rejected: %v", name, err)
		}
	})
}
