package fileops

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Algorithms lists the supported checksum algorithm names.
var Algorithms = []string{"md5", "sha1", "sha256", "sha512", "blake2b"}

// newHasher maps an algorithm name to a hash instance. blake2b is the
// 256-bit variant.
func newHasher(algorithm string) (hash.Hash, error) {
	switch strings.ToLower(algorithm) {
	case "md5":
		return md5.New(), nil
	case "sha1":
		return sha1.New(), nil
	case "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	case "blake2b":
		return blake2b.New256(nil)
	default:
		return nil, fmt.Errorf("invalid checksum algorithm '%s'. Valid options: %s",
			algorithm, strings.Join(Algorithms, ", "))
	}
}

// Checksum computes the hex digest of a file with the named algorithm. The
// file is streamed through the hash, never loaded whole.
func Checksum(path, algorithm string) (string, error) {
	hasher, err := newHasher(algorithm)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(hasher, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
