package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WriteScreenshot writes a small fake PNG named name into dir and returns its
// path. A non-zero modTime is applied to the file.
func WriteScreenshot(t testing.TB, dir, name string, modTime time.Time) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	data := append([]byte("\x89PNG\r\n\x1a\n"), []byte(name)...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if !modTime.IsZero() {
		if err := os.Chtimes(path, modTime, modTime); err != nil {
			t.Fatalf("chtimes %s: %v", path, err)
		}
	}
	return path
}
