package util

import (
	"encoding/json"
	"os"
)

// JSONOutput provides structured output for CLI operations
type JSONOutput struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ChecksumResult is one file's digest in machine-readable output
type ChecksumResult struct {
	Path      string `json:"path"`
	Algorithm string `json:"algorithm"`
	Sum       string `json:"sum"`
}

// DuplicateGroupResult is one duplicate group in machine-readable output.
// Original is the first file seen with the group's content; WastedBytes is
// the space the remaining copies occupy.
type DuplicateGroupResult struct {
	Hash        string   `json:"hash"`
	Original    string   `json:"original"`
	Duplicates  []string `json:"duplicates"`
	WastedBytes int64    `json:"wasted_bytes"`
}

// RenameResult is one planned or applied rename in machine-readable output
type RenameResult struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// RunResult summarizes one engine run
type RunResult struct {
	RunID     string `json:"run_id"`
	Command   string `json:"command"`
	Total     int    `json:"total"`
	Processed int    `json:"processed"`
	Errors    int    `json:"errors"`
	Duration  string `json:"duration"`
}

// PrintJSON outputs data as formatted JSON
func PrintJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// PrintJSONError outputs an error in JSON format
func PrintJSONError(err error) {
	output := JSONOutput{
		Success: false,
		Error:   err.Error(),
	}
	json.NewEncoder(os.Stdout).Encode(output)
}

// PrintJSONSuccess outputs success data in JSON format
func PrintJSONSuccess(data interface{}) {
	output := JSONOutput{
		Success: true,
		Data:    data,
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.Encode(output)
}
