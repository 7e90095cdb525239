//go:build !linux

package platform

import "os"

const cloneSupported = false

func Clone(dst, src *os.File) error {
	return ErrUnsupported
}
