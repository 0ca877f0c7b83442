package fileops

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestChecksumKnownVectors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "vector.txt", "abc")

	cases := []struct {
		algorithm string
		want      string
	}{
		{"md5", "900150983cd24fb0d6963f7d28e17f72"},
		{"sha1", "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{"sha256", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{"sha512", "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
		{"blake2b", "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319"},
	}
	for _, tc := range cases {
		t.Run(tc.algorithm, func(t *testing.T) {
			got, err := Checksum(path, tc.algorithm)
			if err != nil {
				t.Fatalf("Checksum failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("Checksum = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestChecksumEmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.txt", "")

	got, err := Checksum(path, "md5")
	if err != nil {
		t.Fatalf("Checksum failed: %v", err)
	}
	if got != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Errorf("Empty file md5 = %s", got)
	}
}

func TestChecksumUnknownAlgorithm(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "abc")
	if _, err := Checksum(path, "crc32"); err == nil {
		t.Error("Expected error for unsupported algorithm")
	}
}

func TestChecksumMissingFile(t *testing.T) {
	if _, err := Checksum(filepath.Join(t.TempDir(), "missing.txt"), "md5"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestAlgorithmsList(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "abc")
	for _, algorithm := range Algorithms {
		if _, err := Checksum(path, algorithm); err != nil {
			t.Errorf("Listed algorithm %s failed: %v", algorithm, err)
		}
	}
}

func BenchmarkChecksumMD5(b *testing.B) {
	path := filepath.Join(b.TempDir(), "bench.bin")
	if err := os.WriteFile(path, bytes.Repeat([]byte("cons0leweb"), 6400), 0o644); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Checksum(path, "md5"); err != nil {
			b.Fatal(err)
		}
	}
}
