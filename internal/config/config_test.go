package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CATALOG_BASE_DIR",
	"CATALOG_OUTPUT_FILE",
	"CATALOG_IMAGE_MAP_FILE",
	"CATALOG_WEB_PREFIX",
	"CATALOG_WEBP_DIR",
	"CATALOG_WORKERS",
	"LOG_LEVEL",
	"LOG_FORMAT",
}

// isolate clears config env vars and moves into an empty directory so no
// stray .env file is picked up.
func isolate(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestResolveDefaults(t *testing.T) {
	isolate(t)

	var cfg Config
	require.NoError(t, cfg.Resolve(Flags{}))

	assert.Equal(t, DefaultBaseDir, cfg.BaseDir)
	assert.Equal(t, DefaultOutputFile, cfg.OutputFile)
	assert.Equal(t, DefaultImageMapFile, cfg.ImageMapFile)
	assert.Equal(t, DefaultWebPrefix, cfg.WebPrefix)
	assert.Equal(t, DefaultWebPDir, cfg.WebPDir)
	assert.Equal(t, 0, cfg.ThumbSize)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad(t *testing.T) {
	t.Run("reads json file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"base_dir": "art", "output_file": "out/items.json", "thumb_size": 128}`), 0644))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "art", cfg.BaseDir)
		assert.Equal(t, "out/items.json", cfg.OutputFile)
		assert.Equal(t, 128, cfg.ThumbSize)
		assert.Empty(t, cfg.WebPDir)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config: read")
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config: parse")
	})
}

func TestResolvePrecedence(t *testing.T) {
	isolate(t)
	t.Setenv("CATALOG_BASE_DIR", "env-base")
	t.Setenv("CATALOG_OUTPUT_FILE", "env-out.json")
	t.Setenv("CATALOG_WORKERS", "3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Config{BaseDir: "file-base", OutputFile: "file-out.json", WebPDir: "file-webp", Workers: 9}
	require.NoError(t, cfg.Resolve(Flags{BaseDir: "flag-base", ThumbSize: 64}))

	assert.Equal(t, "flag-base", cfg.BaseDir, "flags beat env")
	assert.Equal(t, "env-out.json", cfg.OutputFile, "env beats file")
	assert.Equal(t, "file-webp", cfg.WebPDir, "file beats defaults")
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 64, cfg.ThumbSize)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestResolveDotEnv(t *testing.T) {
	isolate(t)
	// godotenv never overrides a variable that is already set, even to ""
	require.NoError(t, os.Unsetenv("CATALOG_WEBP_DIR"))
	require.NoError(t, os.WriteFile(".env", []byte("CATALOG_WEBP_DIR=dotenv-webp\n"), 0644))

	var cfg Config
	require.NoError(t, cfg.Resolve(Flags{}))

	assert.Equal(t, "dotenv-webp", cfg.WebPDir)
}

func TestResolveInvalidWorkers(t *testing.T) {
	isolate(t)
	t.Setenv("CATALOG_WORKERS", "many")

	var cfg Config
	err := cfg.Resolve(Flags{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_WORKERS")
}
