//go:build !linux

package fsys

import (
	"os"
	"time"
)

// createdTime is unavailable without Unix stat data; callers fall back to
// the modification time.
func createdTime(_ os.FileInfo) time.Time {
	return time.Time{}
}
