package util

import (
	"fmt"
	"strconv"
	"strings"
)

// sizeUnits is ordered longest suffix first so "KB" is never read as "B"
var sizeUnits = []struct {
	suffix     string
	multiplier int64
}{
	{"KIB", 1024},
	{"MIB", 1024 * 1024},
	{"GIB", 1024 * 1024 * 1024},
	{"TIB", 1024 * 1024 * 1024 * 1024},
	{"KB", 1024},
	{"MB", 1024 * 1024},
	{"GB", 1024 * 1024 * 1024},
	{"TB", 1024 * 1024 * 1024 * 1024},
	{"B", 1},
}

// ParseSize parses a human-readable size string (e.g., "10MB", "1.5GB") into
// bytes. A bare number means bytes.
func ParseSize(sizeStr string) (int64, error) {
	sizeStr = strings.TrimSpace(strings.ToUpper(sizeStr))
	if sizeStr == "" {
		return 0, fmt.Errorf("empty size string")
	}

	var numberPart string
	var multiplier int64

	for _, unit := range sizeUnits {
		if strings.HasSuffix(sizeStr, unit.suffix) {
			numberPart = strings.TrimSuffix(sizeStr, unit.suffix)
			multiplier = unit.multiplier
			break
		}
	}

	if multiplier == 0 {
		n, err := strconv.ParseInt(sizeStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid size format: %s", sizeStr)
		}
		return n, nil
	}

	numberPart = strings.TrimSpace(numberPart)
	number, err := strconv.ParseFloat(numberPart, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size number: %s", numberPart)
	}

	return int64(number * float64(multiplier)), nil
}

// FormatSize formats a size in bytes to a human-readable string
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
