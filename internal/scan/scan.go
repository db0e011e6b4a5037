package scan

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// ErrDirectoryUnavailable matches any DirectoryUnavailableError.
var ErrDirectoryUnavailable = errors.New("screenshot directory unavailable")

// DirectoryUnavailableError reports a screenshot directory that could not
// be listed.
type DirectoryUnavailableError struct {
	Dir string
	Err error
}

func (e *DirectoryUnavailableError) Error() string {
	return fmt.Sprintf("screenshot directory %s unavailable: %v", e.Dir, e.Err)
}

func (e *DirectoryUnavailableError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrDirectoryUnavailable.
func (e *DirectoryUnavailableError) Is(target error) bool {
	return target == ErrDirectoryUnavailable
}

// Screenshot is a file observed during a scan. Path is the dedup identity.
type Screenshot struct {
	Path    string
	Name    string
	Created time.Time
	Size    int64
}

// Scanner lists screenshot directories.
type Scanner struct {
	// createdAt resolves the creation time of a file. Tests replace it to
	// control ordering.
	createdAt func(path string, info os.FileInfo) time.Time
	info      func(entry fs.DirEntry) (fs.FileInfo, error)
}

// NewScanner returns a scanner that reads file birth times when the
// platform reports them.
func NewScanner() *Scanner {
	return &Scanner{createdAt: creationTime}
}

// Scan returns the regular files directly inside dir, oldest first. Ties are
// broken by name so the order is deterministic.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]Screenshot, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DirectoryUnavailableError{Dir: dir, Err: err}
	}

	createdAt := s.createdAt
	if createdAt == nil {
		createdAt = creationTime
	}
	infoOf := s.info
	if infoOf == nil {
		infoOf = fs.DirEntry.Info
	}

	shots := make([]Screenshot, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !entry.Type().IsRegular() {
			continue
		}
		info, err := infoOf(entry)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				// Removed between listing and stat.
				continue
			}
			return nil, &DirectoryUnavailableError{Dir: dir, Err: fmt.Errorf("stat %s: %w", name, err)}
		}
		path := filepath.Join(dir, name)
		shots = append(shots, Screenshot{
			Path:    path,
			Name:    name,
			Created: createdAt(path, info),
			Size:    info.Size(),
		})
	}

	slices.SortStableFunc(shots, func(a, b Screenshot) int {
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return shots, nil
}
