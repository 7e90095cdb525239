//go:build unix

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

const mmapSupported = true

// Map maps the first size bytes of f read-only. The returned release func
// unmaps the region; f stays open and is owned by the caller.
func Map(f *os.File, size int64) ([]byte, func() error, error) {
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}

	return data, func() error { return unix.Munmap(data) }, nil
}
