package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []string{".txt", ".html", ".css", ".js", ".py", ".json"}, cfg.Files.Extensions)
	assert.Equal(t, 10, cfg.Files.MaxFileSizeMB)
	assert.Equal(t, int64(10*1024*1024), cfg.Files.MaxFileSizeBytes, "Computed byte limit should follow MB setting")
	assert.Equal(t, 8, cfg.Engine.Workers)
	assert.True(t, cfg.Backup.OnInsert)
	assert.Equal(t, "md5", cfg.Checksum.Algorithm)
	assert.True(t, cfg.Checksum.UseIndex)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.NotEmpty(t, cfg.Logging.File)
	assert.Empty(t, cfg.RecentFolders)

	assert.NoError(t, cfg.Validate(), "Defaults should validate")
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err, "Missing config file should fall back to defaults")
	assert.Equal(t, 8, cfg.Engine.Workers)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
  "files": {"extensions": [".md"], "max_file_size_mb": 2},
  "engine": {"workers": 3},
  "checksum": {"algorithm": "sha256", "index_path": "/tmp/idx.msgpack", "use_index": false},
  "logging": {"level": "debug", "output": "console", "format": "text"}
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{".md"}, cfg.Files.Extensions)
	assert.Equal(t, int64(2*1024*1024), cfg.Files.MaxFileSizeBytes)
	assert.Equal(t, 3, cfg.Engine.Workers)
	assert.Equal(t, "sha256", cfg.Checksum.Algorithm)
	assert.False(t, cfg.Checksum.UseIndex)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("CU_WORKERS", "4")
	t.Setenv("CU_EXTENSIONS", ".go, .mod")
	t.Setenv("CU_CHECKSUM_ALGORITHM", "blake2b")
	t.Setenv("CU_LOG_OUTPUT", "console")
	t.Setenv("CU_BACKUP_ON_INSERT", "false")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Engine.Workers)
	assert.Equal(t, []string{".go", ".mod"}, cfg.Files.Extensions, "Extension list should be split and trimmed")
	assert.Equal(t, "blake2b", cfg.Checksum.Algorithm)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.False(t, cfg.Backup.OnInsert)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty extensions", func(c *Config) { c.Files.Extensions = nil }},
		{"extension without dot", func(c *Config) { c.Files.Extensions = []string{"txt"} }},
		{"zero max size", func(c *Config) { c.Files.MaxFileSizeMB = 0 }},
		{"zero workers", func(c *Config) { c.Engine.Workers = 0 }},
		{"absurd workers", func(c *Config) { c.Engine.Workers = 500 }},
		{"unknown algorithm", func(c *Config) { c.Checksum.Algorithm = "crc32" }},
		{"index without path", func(c *Config) { c.Checksum.UseIndex = true; c.Checksum.IndexPath = "" }},
		{"unknown level", func(c *Config) { c.Logging.Level = "trace" }},
		{"unknown output", func(c *Config) { c.Logging.Output = "syslog" }},
		{"file output without file", func(c *Config) { c.Logging.Output = "file"; c.Logging.File = "" }},
		{"unknown format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestAddRecentFolder(t *testing.T) {
	cfg := DefaultConfig()

	for i := 0; i < 7; i++ {
		cfg.AddRecentFolder(fmt.Sprintf("/data/run%d", i))
	}
	require.Len(t, cfg.RecentFolders, MaxRecentFolders, "Recent list should be capped")
	assert.Equal(t, "/data/run6", cfg.RecentFolders[0], "Most recent folder should be first")

	// Re-adding an existing folder moves it to the front without growing the list
	cfg.AddRecentFolder("/data/run4")
	assert.Len(t, cfg.RecentFolders, MaxRecentFolders)
	assert.Equal(t, "/data/run4", cfg.RecentFolders[0])
	assert.NotContains(t, cfg.RecentFolders[1:], "/data/run4")
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := DefaultConfig()
	cfg.Engine.Workers = 2
	cfg.AddRecentFolder("/srv/in")
	require.NoError(t, cfg.SaveToFile(path), "SaveToFile should create parent directories")

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Engine.Workers)
	assert.Equal(t, []string{"/srv/in"}, loaded.RecentFolders)
}
