// Package platform probes for kernel copy primitives and wraps them behind a
// portable API. Each primitive has a fallback build that reports
// ErrUnsupported so callers can drop to a buffered path.
package platform

import "errors"

// ErrUnsupported is returned by a primitive the running platform lacks.
var ErrUnsupported = errors.New("platform: primitive not supported")

// Capabilities reports which primitives are usable on this platform.
type Capabilities struct {
	ZeroCopy bool // fd-to-fd kernel transfer (sendfile)
	Mmap     bool // read-only file mapping
	Clone    bool // copy-on-write file clone (reflink)
}

// Probe returns the capabilities compiled into this build.
func Probe() Capabilities {
	return Capabilities{
		ZeroCopy: zeroCopySupported,
		Mmap:     mmapSupported,
		Clone:    cloneSupported,
	}
}
