package service

import (
	"errors"
	"fmt"
	"io"
	"os"

	apperrors "github.com/zzenonn/zreplica/internal/errors"
)

// handleSet owns the open destination files of one copy batch, indexed by
// position in paths. The opener must call Close on every exit path.
type handleSet struct {
	paths []string
	files []*os.File
}

// openHandles creates or truncates every path. If any open fails the handles
// opened so far are closed and the batch is aborted.
func openHandles(paths []string) (*handleSet, error) {
	hs := &handleSet{
		paths: paths,
		files: make([]*os.File, 0, len(paths)),
	}
	for _, path := range paths {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			_ = hs.Close()
			return nil, apperrors.IOFailureError("open", path, err)
		}
		hs.files = append(hs.files, f)
	}
	return hs, nil
}

// writeAll writes chunk to every destination in index order.
func (hs *handleSet) writeAll(chunk []byte) error {
	for i, f := range hs.files {
		if _, err := f.Write(chunk); err != nil {
			return apperrors.IOFailureError("write", hs.paths[i], err)
		}
	}
	return nil
}

// rewind truncates every destination to offset and positions it there.
func (hs *handleSet) rewind(offset int64) error {
	for i, f := range hs.files {
		if err := f.Truncate(offset); err != nil {
			return apperrors.IOFailureError("truncate", hs.paths[i], err)
		}
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			return apperrors.IOFailureError("seek", hs.paths[i], err)
		}
	}
	return nil
}

// Close releases every handle. All close errors are collected; a second call
// is a no-op.
func (hs *handleSet) Close() error {
	var errs []error
	for i, f := range hs.files {
		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", hs.paths[i], err))
		}
	}
	hs.files = nil
	return errors.Join(errs...)
}
