package util

import (
	"fmt"
	"strings"
)

// ErrorWithSuggestion wraps an error with a helpful suggestion
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

func (e *ErrorWithSuggestion) Error() string {
	return fmt.Sprintf("%v\nSuggestion: %s", e.Err, e.Suggestion)
}

func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// WrapErrorWithSuggestion creates an error with a helpful suggestion
func WrapErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetErrorSuggestion returns helpful suggestions based on common error patterns
func GetErrorSuggestion(err error) string {
	if err == nil {
		return ""
	}

	errStr := err.Error()

	// File errors
	if strings.Contains(errStr, "no such file or directory") {
		return "Check the path and ensure it exists"
	}

	if strings.Contains(errStr, "permission denied") {
		return "Check file permissions or try running with appropriate privileges"
	}

	if strings.Contains(errStr, "not a directory") {
		return "This operation needs a folder, not a file"
	}

	// Backup errors
	if strings.Contains(errStr, "invalid backup file") {
		return "Backups are named <file>_<YYYYMMDD_HHMMSS>.bak.cu; other files cannot be restored"
	}

	// Option errors
	if strings.Contains(errStr, "checksum algorithm") {
		return "Supported algorithms: md5, sha1, sha256, sha512, blake2b"
	}

	if strings.Contains(errStr, "invalid insert position") {
		return "Valid positions: start, end, random"
	}

	if strings.Contains(errStr, "invalid naming scheme") {
		return "Valid schemes: random, sequential"
	}

	if strings.Contains(errStr, "invalid size format") || strings.Contains(errStr, "invalid size number") {
		return "Sizes look like 512, 10KB, or 1.5MB"
	}

	// Configuration errors
	if strings.Contains(errStr, "failed to parse config") || strings.Contains(errStr, "invalid config") {
		return "Check that the configuration file is valid JSON. Use -config to point at a different file, or 'cu config -init' to write defaults"
	}

	// Default suggestion
	return "Check the error message above and ensure all requirements are met"
}

// FormatError formats an error with suggestions for better user experience
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	// Check if it already has a suggestion
	if _, ok := err.(*ErrorWithSuggestion); ok {
		return err.Error()
	}

	suggestion := GetErrorSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %v\n💡 Suggestion: %s", err, suggestion)
	}

	return fmt.Sprintf("Error: %v", err)
}
