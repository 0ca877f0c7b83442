package scan

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/cons0leweb/cons0leweb-utils/pkg/logging"
)

func TestMain(m *testing.M) {
	logging.InitGlobalLogger(&logging.Config{Level: logging.ErrorLevel, Output: io.Discard})
	os.Exit(m.Run())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func paths(files []File) []string {
	result := make([]string, len(files))
	for i, f := range files {
		result[i] = f.Path
	}
	sort.Strings(result)
	return result
}

func TestWalkRecursive(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a")
	b := writeFile(t, dir, filepath.Join("sub", "b.txt"), "b")
	c := writeFile(t, dir, filepath.Join("sub", "deep", "c.txt"), "c")

	files, err := Walk(dir, Options{Recursive: true})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	want := []string{a, b, c}
	sort.Strings(want)
	if got := paths(files); !reflect.DeepEqual(got, want) {
		t.Errorf("Walk = %v, want %v", got, want)
	}
}

func TestWalkNonRecursive(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "a")
	writeFile(t, dir, filepath.Join("sub", "b.txt"), "b")

	files, err := Walk(dir, Options{Recursive: false})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	if got := paths(files); !reflect.DeepEqual(got, []string{a}) {
		t.Errorf("Non-recursive walk = %v, want only top level %v", got, a)
	}
}

func TestWalkExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	txt := writeFile(t, dir, "keep.txt", "x")
	upper := writeFile(t, dir, "loud.TXT", "x")
	writeFile(t, dir, "drop.log", "x")
	writeFile(t, dir, "noext", "x")

	files, err := Walk(dir, Options{Extensions: []string{".txt"}})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	want := []string{txt, upper}
	sort.Strings(want)
	if got := paths(files); !reflect.DeepEqual(got, want) {
		t.Errorf("Extension filter = %v, want %v", got, want)
	}
}

func TestWalkNormalizesExtensionInput(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "x")

	// No dot, wrong case, stray spaces
	files, err := Walk(dir, Options{Extensions: []string{" TXT "}})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if got := paths(files); !reflect.DeepEqual(got, []string{a}) {
		t.Errorf("Walk = %v, want %v", got, a)
	}
}

func TestWalkMaxSize(t *testing.T) {
	dir := t.TempDir()
	small := writeFile(t, dir, "small.txt", "1234")
	writeFile(t, dir, "big.txt", "123456789")

	files, err := Walk(dir, Options{MaxSize: 4})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if got := paths(files); !reflect.DeepEqual(got, []string{small}) {
		t.Errorf("Size filter = %v, want file at the limit only", got)
	}
}

func TestWalkEmptyExtensionsMatchesAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "x")
	writeFile(t, dir, "b.log", "x")
	writeFile(t, dir, "c", "x")

	files, err := Walk(dir, Options{})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(files) != 3 {
		t.Errorf("Expected all 3 files, got %v", paths(files))
	}
}

func TestWalkMissingRoot(t *testing.T) {
	if _, err := Walk(filepath.Join(t.TempDir(), "missing"), Options{}); err == nil {
		t.Error("Expected error for missing root")
	}
}

func TestWalkRootIsFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "x")
	if _, err := Walk(path, Options{}); err == nil {
		t.Error("Expected error when root is a file")
	}
}

func TestWalkReportsMetadata(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "12345")

	files, err := Walk(dir, Options{})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("Expected 1 file, got %d", len(files))
	}
	if files[0].Size != 5 {
		t.Errorf("Size = %d, want 5", files[0].Size)
	}
	if files[0].ModTime.IsZero() {
		t.Error("ModTime not populated")
	}
}

func TestFindBackups(t *testing.T) {
	dir := t.TempDir()
	b1 := writeFile(t, dir, "a.txt_20240105_093015.bak.cu", "x")
	b2 := writeFile(t, dir, filepath.Join("sub", "b.txt_20240105_093015.bak.cu"), "x")
	writeFile(t, dir, "a.txt", "x")
	writeFile(t, dir, "unrelated.bak", "x")

	backups, err := FindBackups(dir)
	if err != nil {
		t.Fatalf("FindBackups failed: %v", err)
	}

	sort.Strings(backups)
	want := []string{b1, b2}
	sort.Strings(want)
	if !reflect.DeepEqual(backups, want) {
		t.Errorf("FindBackups = %v, want %v", backups, want)
	}
}

func TestFindBackupsMissingRoot(t *testing.T) {
	if _, err := FindBackups(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing root")
	}
}

func TestNormalizeExtensions(t *testing.T) {
	got := NormalizeExtensions([]string{"TXT", ".Html", " css ", ""})
	want := []string{".txt", ".html", ".css"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeExtensions = %v, want %v", got, want)
	}
}
