package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cons0leweb/cons0leweb-utils/pkg/config"
)

func handleConfigCommand(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	var (
		init_    = fs.Bool("init", false, "Write the default configuration file")
		show     = fs.Bool("show", false, "Show the effective configuration")
		validate = fs.Bool("validate", false, "Validate the configuration file")
		path     = fs.String("config", "", "Configuration file path (default: ~/.cons0leweb/config.json)")
	)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cu config [-init | -show | -validate] [-config <path>]")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	configPath := *path
	if configPath == "" {
		defaultPath, err := config.GetDefaultConfigPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to get default config path: %v\n", err)
			os.Exit(1)
		}
		configPath = defaultPath
	}

	switch {
	case *init_:
		initConfig(configPath)
	case *show:
		showConfig(configPath)
	case *validate:
		validateConfig(configPath)
	default:
		fs.Usage()
	}
}

func initConfig(path string) {
	cfg := config.DefaultConfig()

	if err := cfg.SaveToFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Default configuration saved to: %s\n", path)
}

func showConfig(path string) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Configuration from %s:\n", path)
	fmt.Println(string(data))
}

func validateConfig(path string) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Configuration at %s is valid\n", path)
}
