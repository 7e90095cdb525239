//go:build linux

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

const cloneSupported = true

// Clone makes dst share src's extents via FICLONE. Filesystems without
// reflink support (ext4, tmpfs) fail with EOPNOTSUPP or EXDEV.
func Clone(dst, src *os.File) error {
	return unix.IoctlFileClone(int(dst.Fd()), int(src.Fd()))
}
