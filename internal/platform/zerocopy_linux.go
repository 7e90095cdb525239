//go:build linux

package platform

import (
	"errors"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

const zeroCopySupported = true

// Transfer copies length bytes of src starting at offset into dst at its
// current position with sendfile(2). The bytes never enter user space. It
// returns the number of bytes written before any error.
func Transfer(dst, src *os.File, offset, length int64) (int64, error) {
	dstFd, srcFd := int(dst.Fd()), int(src.Fd())

	var written int64
	off := offset
	for written < length {
		n, err := unix.Sendfile(dstFd, srcFd, &off, int(length-written))
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			continue
		}
		if err != nil {
			return written, err
		}
		if n == 0 {
			return written, io.ErrUnexpectedEOF
		}
		written += int64(n)
	}
	return written, nil
}
