package fileops

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/cons0leweb/cons0leweb-utils/pkg/logging"
)

// NamingScheme selects how generated file names are built
type NamingScheme string

const (
	// NamingRandom names files with eight random ASCII letters
	NamingRandom NamingScheme = "random"
	// NamingSequential names files dummy_<YYYYMMDD_HHMMSS>
	NamingSequential NamingScheme = "sequential"
)

// ParseNamingScheme parses a naming flag value
func ParseNamingScheme(s string) (NamingScheme, error) {
	switch NamingScheme(s) {
	case NamingRandom:
		return NamingRandom, nil
	case NamingSequential:
		return NamingSequential, nil
	default:
		return "", fmt.Errorf("invalid naming scheme '%s'. Valid options: random, sequential", s)
	}
}

const (
	letterChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	fillerChars = letterChars + "0123456789 \n"
)

// randomLetters returns n random ASCII letters.
func randomLetters(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letterChars[rand.Intn(len(letterChars))]
	}
	return string(b)
}

// randomFiller returns n random characters of printable filler.
func randomFiller(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = fillerChars[rand.Intn(len(fillerChars))]
	}
	return string(b)
}

// CreateDummyFile writes a synthetic file into dir, creating dir if needed,
// and returns the new path. The extension is given without a leading dot.
// Empty content selects a generated header plus one hundred characters of
// random filler. Name collisions are resolved with a numeric suffix rather
// than overwriting; sequential names collide whenever two files are created
// within the same second.
func CreateDummyFile(dir, extension string, naming NamingScheme, content string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create folder %s: %w", dir, err)
	}

	var stem string
	switch naming {
	case NamingSequential:
		stem = "dummy_" + time.Now().Format(timestampLayout)
	case NamingRandom:
		stem = randomLetters(8)
	default:
		return "", fmt.Errorf("invalid naming scheme '%s'. Valid options: random, sequential", naming)
	}

	if content == "" {
		content = fmt.Sprintf("This is a dummy %s file created on %s\n%s",
			extension, time.Now().Format("2006-01-02 15:04:05"), randomFiller(100))
	}

	path, err := createUnique(dir, stem, extension, []byte(content))
	if err != nil {
		return "", err
	}

	logging.Debug("dummy file created", map[string]interface{}{"path": path})
	return path, nil
}

// createUnique writes data to <stem>.<ext>, appending _1, _2, ... to the
// stem while the name is taken.
func createUnique(dir, stem, extension string, data []byte) (string, error) {
	for attempt := 0; attempt < 10000; attempt++ {
		name := stem
		if attempt > 0 {
			name = fmt.Sprintf("%s_%d", stem, attempt)
		}
		path := filepath.Join(dir, name+"."+extension)

		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %s: %w", path, err)
		}

		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close %s: %w", path, err)
		}
		return path, nil
	}

	return "", fmt.Errorf("no free file name for %s in %s", stem, dir)
}
