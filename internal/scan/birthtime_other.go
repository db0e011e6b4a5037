//go:build !linux

package scan

import (
	"os"
	"time"
)

func creationTime(_ string, info os.FileInfo) time.Time {
	return info.ModTime()
}
