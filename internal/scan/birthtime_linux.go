//go:build linux

package scan

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// creationTime reads the birth time via statx(2). Filesystems that do not
// record it fall back to the modification time.
func creationTime(path string, info os.FileInfo) time.Time {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, unix.STATX_BTIME, &stx)
	if err != nil || stx.Mask&unix.STATX_BTIME == 0 {
		return info.ModTime()
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
}
