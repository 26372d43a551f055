//go:build linux

package fsys

import (
	"os"
	"syscall"
	"time"
)

// createdTime extracts the inode change time from Unix stat data. Birth time
// is not available on most Unix filesystems, so ctime is the closest stand-in.
func createdTime(info os.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}
	}
	return time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec)
}
