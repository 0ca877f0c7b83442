package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MaxRecentFolders caps the recently used folder list.
const MaxRecentFolders = 5

// Config holds all cons0leweb-utils configuration
type Config struct {
	// File selection defaults
	Files FilesConfig `json:"files"`

	// Processing engine settings
	Engine EngineConfig `json:"engine"`

	// Backup behavior
	Backup BackupConfig `json:"backup"`

	// Checksum and duplicate detection
	Checksum ChecksumConfig `json:"checksum"`

	// System configuration
	Logging LoggingConfig `json:"logging"`

	// Folders recently used by bulk operations, most recent first
	RecentFolders []string `json:"recent_folders"`
}

// FilesConfig holds file selection defaults
type FilesConfig struct {
	Extensions    []string `json:"extensions"`
	MaxFileSizeMB int      `json:"max_file_size_mb"`

	// Computed field, derived from MaxFileSizeMB
	MaxFileSizeBytes int64 `json:"-"`
}

// EngineConfig holds worker pool settings
type EngineConfig struct {
	Workers int `json:"workers"`
}

// BackupConfig holds backup behavior settings
type BackupConfig struct {
	OnInsert bool `json:"on_insert"`
}

// ChecksumConfig holds hashing settings
type ChecksumConfig struct {
	Algorithm string `json:"algorithm"` // md5, sha1, sha256, sha512, blake2b
	IndexPath string `json:"index_path"`
	UseIndex  bool   `json:"use_index"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Output string `json:"output"` // console, file, both
	File   string `json:"file,omitempty"`
	Format string `json:"format"` // text, json
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	appDir := filepath.Join(homeDir, ".cons0leweb")

	config := &Config{
		Files: FilesConfig{
			Extensions:    []string{".txt", ".html", ".css", ".js", ".py", ".json"},
			MaxFileSizeMB: 10,
		},
		Engine: EngineConfig{
			Workers: 8,
		},
		Backup: BackupConfig{
			OnInsert: true,
		},
		Checksum: ChecksumConfig{
			Algorithm: "md5",
			IndexPath: filepath.Join(appDir, "hashindex.msgpack"),
			UseIndex:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "both",
			File:   filepath.Join(appDir, "cons0leweb-utils.log"),
			Format: "text",
		},
		RecentFolders: []string{},
	}

	config.updateComputedFields()
	return config
}

// LoadConfig loads configuration from file with environment variable overrides
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	// Load from file if it exists
	if configPath != "" {
		if err := config.loadFromFile(configPath); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Apply environment variable overrides
	config.applyEnvironmentOverrides()

	// Update computed fields after overrides
	config.updateComputedFields()

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadFromFile loads configuration from a JSON file
func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, use defaults
			return nil
		}
		return err
	}

	return json.Unmarshal(data, c)
}

// updateComputedFields populates computed fields based on core configuration
func (c *Config) updateComputedFields() {
	c.Files.MaxFileSizeBytes = int64(c.Files.MaxFileSizeMB) * 1024 * 1024
}

// applyEnvironmentOverrides applies environment variable overrides
func (c *Config) applyEnvironmentOverrides() {
	// File selection overrides
	if val := os.Getenv("CU_EXTENSIONS"); val != "" {
		parts := strings.Split(val, ",")
		exts := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				exts = append(exts, p)
			}
		}
		c.Files.Extensions = exts
	}
	if val := os.Getenv("CU_MAX_FILE_SIZE_MB"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			c.Files.MaxFileSizeMB = size
		}
	}

	// Engine overrides
	if val := os.Getenv("CU_WORKERS"); val != "" {
		if workers, err := strconv.Atoi(val); err == nil {
			c.Engine.Workers = workers
		}
	}

	// Backup overrides
	if val := os.Getenv("CU_BACKUP_ON_INSERT"); val != "" {
		c.Backup.OnInsert = strings.ToLower(val) == "true"
	}

	// Checksum overrides
	if val := os.Getenv("CU_CHECKSUM_ALGORITHM"); val != "" {
		c.Checksum.Algorithm = val
	}
	if val := os.Getenv("CU_INDEX_PATH"); val != "" {
		c.Checksum.IndexPath = val
	}
	if val := os.Getenv("CU_USE_INDEX"); val != "" {
		c.Checksum.UseIndex = strings.ToLower(val) == "true"
	}

	// Logging overrides
	if val := os.Getenv("CU_LOG_LEVEL"); val != "" {
		c.Logging.Level = val
	}
	if val := os.Getenv("CU_LOG_OUTPUT"); val != "" {
		c.Logging.Output = val
	}
	if val := os.Getenv("CU_LOG_FILE"); val != "" {
		c.Logging.File = val
	}
	if val := os.Getenv("CU_LOG_FORMAT"); val != "" {
		c.Logging.Format = val
	}
}

// Validate validates the configuration and provides helpful suggestions
func (c *Config) Validate() error {
	// Validate file selection
	if len(c.Files.Extensions) == 0 {
		return fmt.Errorf("extension list cannot be empty. Use '.txt,.html' style entries")
	}
	for _, ext := range c.Files.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("invalid extension '%s'. Extensions must start with a dot, e.g. '.txt'", ext)
		}
	}
	if c.Files.MaxFileSizeMB <= 0 {
		return fmt.Errorf("max file size must be positive (current: %d MB). Use 10 for default", c.Files.MaxFileSizeMB)
	}

	// Validate engine configuration
	if c.Engine.Workers <= 0 {
		return fmt.Errorf("worker count must be positive (current: %d). Use 8 for default", c.Engine.Workers)
	}
	if c.Engine.Workers > 64 {
		return fmt.Errorf("worker count is very high (%d). Consider using 4-16", c.Engine.Workers)
	}

	// Validate checksum configuration
	validAlgorithms := map[string]bool{
		"md5": true, "sha1": true, "sha256": true, "sha512": true, "blake2b": true,
	}
	if !validAlgorithms[c.Checksum.Algorithm] {
		return fmt.Errorf("invalid checksum algorithm '%s'. Valid options: md5, sha1, sha256, sha512, blake2b", c.Checksum.Algorithm)
	}
	if c.Checksum.UseIndex && c.Checksum.IndexPath == "" {
		return fmt.Errorf("index path is required when use_index is enabled")
	}

	// Validate logging configuration
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level '%s'. Valid options: debug, info, warn, error", c.Logging.Level)
	}

	validOutputs := map[string]bool{
		"console": true, "file": true, "both": true,
	}
	if !validOutputs[c.Logging.Output] {
		return fmt.Errorf("invalid log output '%s'. Valid options: console, file, both", c.Logging.Output)
	}

	// Check if file output is configured properly
	if (c.Logging.Output == "file" || c.Logging.Output == "both") && c.Logging.File == "" {
		return fmt.Errorf("log file path is required when output is '%s'", c.Logging.Output)
	}

	validFormats := map[string]bool{
		"text": true, "json": true,
	}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format '%s'. Valid options: text, json", c.Logging.Format)
	}

	if len(c.RecentFolders) > MaxRecentFolders {
		return fmt.Errorf("recent folder list is too long (%d). At most %d entries are kept", len(c.RecentFolders), MaxRecentFolders)
	}

	return nil
}

// AddRecentFolder records a folder at the front of the recent list,
// deduplicating and keeping at most MaxRecentFolders entries.
func (c *Config) AddRecentFolder(path string) {
	updated := []string{path}
	for _, folder := range c.RecentFolders {
		if folder != path {
			updated = append(updated, folder)
		}
	}
	if len(updated) > MaxRecentFolders {
		updated = updated[:MaxRecentFolders]
	}
	c.RecentFolders = updated
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal to JSON with proper formatting
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	return os.WriteFile(path, data, 0644)
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".cons0leweb", "config.json"), nil
}
