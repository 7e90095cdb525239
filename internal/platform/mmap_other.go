//go:build !unix

package platform

import "os"

const mmapSupported = false

func Map(f *os.File, size int64) ([]byte, func() error, error) {
	return nil, nil, ErrUnsupported
}
