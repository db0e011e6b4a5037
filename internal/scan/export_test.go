package scan

import (
	"io/fs"
	"os"
	"time"
)

// NewScannerWithClock builds a scanner whose creation times come from fn.
func NewScannerWithClock(fn func(path string, info os.FileInfo) time.Time) *Scanner {
	return &Scanner{createdAt: fn}
}

// NewScannerWithInfo builds a scanner that stats entries through fn.
func NewScannerWithInfo(fn func(entry fs.DirEntry) (fs.FileInfo, error)) *Scanner {
	return &Scanner{createdAt: creationTime, info: fn}
}
