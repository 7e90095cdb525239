//go:build !linux

package platform

import "os"

const zeroCopySupported = false

// Transfer is unavailable off Linux.
func Transfer(dst, src *os.File, offset, length int64) (int64, error) {
	return 0, ErrUnsupported
}
