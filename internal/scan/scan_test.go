package scan_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"runeshot/internal/scan"
)

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestScanOrdersByCreationNotName(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	created := map[string]time.Time{
		writeFile(t, dir, "a.png", 1): base.Add(2 * time.Minute),
		writeFile(t, dir, "b.png", 2): base,
		writeFile(t, dir, "c.png", 3): base.Add(time.Minute),
	}
	scanner := scan.NewScannerWithClock(func(path string, _ os.FileInfo) time.Time {
		return created[path]
	})

	shots, err := scanner.Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	var names []string
	for _, shot := range shots {
		names = append(names, shot.Name)
	}
	want := []string{"b.png", "c.png", "a.png"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
	if shots[0].Size != 2 {
		t.Fatalf("expected size 2 for b.png, got %d", shots[0].Size)
	}
	if shots[0].Path != filepath.Join(dir, "b.png") {
		t.Fatalf("unexpected path %q", shots[0].Path)
	}
}

func TestScanBreaksTiesByName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "z.png", 1)
	writeFile(t, dir, "m.png", 1)
	writeFile(t, dir, "a.png", 1)
	same := time.Unix(1700000000, 0)
	scanner := scan.NewScannerWithClock(func(string, os.FileInfo) time.Time { return same })

	shots, err := scanner.Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(shots) != 3 || shots[0].Name != "a.png" || shots[1].Name != "m.png" || shots[2].Name != "z.png" {
		t.Fatalf("unexpected tie order: %+v", shots)
	}
}

func TestScanSkipsDirectoriesAndDotfiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Quest(Cook's Assistant).png", 1)
	writeFile(t, dir, ".DS_Store", 1)
	if err := os.Mkdir(filepath.Join(dir, "Boss Kills"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "Boss Kills"), "nested.png", 1)

	shots, err := scan.NewScanner().Scan(context.Background(), dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(shots) != 1 || shots[0].Name != "Quest(Cook's Assistant).png" {
		t.Fatalf("unexpected scan result: %+v", shots)
	}
	if shots[0].Created.IsZero() {
		t.Fatal("expected a creation time")
	}
}

func TestScanEmptyDirectory(t *testing.T) {
	shots, err := scan.NewScanner().Scan(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(shots) != 0 {
		t.Fatalf("expected no screenshots, got %d", len(shots))
	}
}

func TestScanMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	_, err := scan.NewScanner().Scan(context.Background(), dir)
	if !errors.Is(err, scan.ErrDirectoryUnavailable) {
		t.Fatalf("expected ErrDirectoryUnavailable, got %v", err)
	}
	var unavailable *scan.DirectoryUnavailableError
	if !errors.As(err, &unavailable) || unavailable.Dir != dir {
		t.Fatalf("expected DirectoryUnavailableError for %s, got %v", dir, err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestScanStatFailureIsDirectoryUnavailable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.png", 1)
	statErr := errors.New("input/output error")
	scanner := scan.NewScannerWithInfo(func(fs.DirEntry) (fs.FileInfo, error) {
		return nil, statErr
	})

	_, err := scanner.Scan(context.Background(), dir)
	if !errors.Is(err, scan.ErrDirectoryUnavailable) {
		t.Fatalf("expected ErrDirectoryUnavailable, got %v", err)
	}
	if !errors.Is(err, statErr) {
		t.Fatalf("expected wrapped stat error, got %v", err)
	}
}

func TestScanIgnoresEntriesRemovedDuringListing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "gone.png", 1)
	scanner := scan.NewScannerWithInfo(func(fs.DirEntry) (fs.FileInfo, error) {
		return nil, fs.ErrNotExist
	})

	shots, err := scanner.Scan(context.Background(), dir)
	if err != nil || len(shots) != 0 {
		t.Fatalf("expected empty scan, got %v %v", shots, err)
	}
}
