package main

import (
	"path/filepath"
	"strings"

	"github.com/cons0leweb/cons0leweb-utils/pkg/config"
	"github.com/cons0leweb/cons0leweb-utils/pkg/logging"
	"github.com/cons0leweb/cons0leweb-utils/pkg/scan"
	"github.com/cons0leweb/cons0leweb-utils/pkg/util"
)

// resolveConfigPath returns the explicit path if given, otherwise the
// per-user default. An empty result means run on built-in defaults.
func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if path, err := config.GetDefaultConfigPath(); err == nil {
		return path
	}
	return ""
}

// loadConfig loads configuration from file or uses defaults
func loadConfig(configPath string) (*config.Config, error) {
	return config.LoadConfig(configPath)
}

// setupLogging configures the global logger from config
func setupLogging(cfg *config.Config) error {
	level, err := logging.ParseLogLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	format, err := logging.ParseLogFormat(cfg.Logging.Format)
	if err != nil {
		return err
	}
	output, err := logging.OpenOutput(cfg.Logging.Output, cfg.Logging.File)
	if err != nil {
		return err
	}

	logging.InitGlobalLogger(&logging.Config{
		Level:  level,
		Format: format,
		Output: output,
	})
	return nil
}

// recordRecentFolder remembers a folder the user operated on. Failures
// only cost the history entry, so they are logged and ignored.
func recordRecentFolder(cfg *config.Config, configPath, dir string) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	cfg.AddRecentFolder(abs)

	if configPath == "" {
		return
	}
	if err := cfg.SaveToFile(configPath); err != nil {
		logging.Warnf("Could not save recent folders: %v", err)
	}
}

// workerCount picks the flag value when set, otherwise the configured one
func workerCount(cfg *config.Config, flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return cfg.Engine.Workers
}

// scanOptions builds walk options from config with flag overrides.
// An -ext value of "all" clears the extension filter entirely.
func scanOptions(cfg *config.Config, extFlag, maxSizeFlag string, recursive bool) (scan.Options, error) {
	opts := scan.Options{
		Extensions: cfg.Files.Extensions,
		MaxSize:    cfg.Files.MaxFileSizeBytes,
		Recursive:  recursive,
	}

	if extFlag != "" {
		if strings.EqualFold(extFlag, "all") {
			opts.Extensions = nil
		} else {
			opts.Extensions = strings.Split(extFlag, ",")
		}
	}

	if maxSizeFlag != "" {
		size, err := util.ParseSize(maxSizeFlag)
		if err != nil {
			return scan.Options{}, err
		}
		opts.MaxSize = size
	}

	return opts, nil
}
