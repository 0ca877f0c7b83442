package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

func handleLogsCommand(args []string) {
	fs := flag.NewFlagSet("logs", flag.ExitOnError)
	var (
		configFile = fs.String("config", "", "Configuration file path")
		tail       = fs.Int("tail", 50, "Number of trailing lines to show")
		clear      = fs.Bool("clear", false, "Empty the log file instead of showing it")
	)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cu logs [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the tail of the log file, or clear it.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	configPath := resolveConfigPath(*configFile)
	cfg, err := loadConfig(configPath)
	if err != nil {
		fail(err)
	}

	logFile := cfg.Logging.File
	if logFile == "" || cfg.Logging.Output == "console" {
		fail(fmt.Errorf("no log file configured, logging goes to the console only"))
	}

	if *clear {
		if err := os.Truncate(logFile, 0); err != nil {
			if os.IsNotExist(err) {
				fmt.Println("Log file is already empty.")
				return
			}
			fail(err)
		}
		fmt.Printf("Cleared %s\n", logFile)
		return
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No log entries yet.")
			return
		}
		fail(err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		fmt.Println("No log entries yet.")
		return
	}
	if *tail > 0 && len(lines) > *tail {
		lines = lines[len(lines)-*tail:]
	}
	for _, line := range lines {
		fmt.Println(line)
	}
}
