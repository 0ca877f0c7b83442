package main

import (
	"fmt"
	"os"

	"github.com/cons0leweb/cons0leweb-utils/pkg/util"
)

const version = "1.2.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "insert":
		handleInsertCommand(args)
	case "restore":
		handleRestoreCommand(args)
	case "generate":
		handleGenerateCommand(args)
	case "rename":
		handleRenameCommand(args)
	case "checksum":
		handleChecksumCommand(args)
	case "dupes":
		handleDupesCommand(args)
	case "clean":
		handleCleanCommand(args)
	case "watch":
		handleWatchCommand(args)
	case "logs":
		handleLogsCommand(args)
	case "config":
		handleConfigCommand(args)
	case "version", "-version", "--version":
		fmt.Printf("cu version %s\n", version)
	case "help", "-help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: cu <command> [options] [arguments]")
	fmt.Println()
	fmt.Println("Bulk file operations:")
	fmt.Println("  insert <folder>     Insert text into every matching file")
	fmt.Println("  restore <folder>    Restore files from their backups")
	fmt.Println("  generate <folder>   Create dummy files")
	fmt.Println("  rename <folder>     Batch rename files with a pattern")
	fmt.Println("  checksum <path>     Compute file checksums")
	fmt.Println("  dupes <folder>      Find files with identical content")
	fmt.Println("  clean <folder>      Delete empty files")
	fmt.Println("  watch <folder>      Insert text into files as they appear")
	fmt.Println()
	fmt.Println("Housekeeping:")
	fmt.Println("  logs                Show or clear the log file")
	fmt.Println("  config              Inspect or initialize configuration")
	fmt.Println("  version             Print the version")
	fmt.Println()
	fmt.Println("Run 'cu <command> -h' for command options.")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  cu insert -text 'reviewed 2024' -position end ./docs")
	fmt.Println("  cu generate -count 100 -ext log ./testdata")
	fmt.Println("  cu dupes -recursive -json ./downloads")
}

// fail prints an error with a suggestion and exits
func fail(err error) {
	fmt.Fprintln(os.Stderr, util.FormatError(err))
	os.Exit(1)
}
