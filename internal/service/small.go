package service

import (
	"context"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	apperrors "github.com/zzenonn/zreplica/internal/errors"
	"github.com/zzenonn/zreplica/internal/platform"
)

// smallFileCopier copies the source once per destination, keeping its
// permission bits and modification time. A reflink clone is tried first and
// abandoned for the rest of the batch after its first failure.
type smallFileCopier struct {
	clone bool
}

func (c *smallFileCopier) Copy(ctx context.Context, sourcePath string, info os.FileInfo, paths []string, bar progress) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.copyFile(sourcePath, path, info); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	return nil
}

func (c *smallFileCopier) copyFile(sourcePath, destPath string, info os.FileInfo) error {
	rd, err := os.Open(sourcePath)
	if err != nil {
		return apperrors.IOFailureError("open", sourcePath, err)
	}
	defer rd.Close()

	perm := info.Mode().Perm()
	wr, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return apperrors.IOFailureError("open", destPath, err)
	}

	if err := c.copyData(wr, rd, sourcePath); err != nil {
		wr.Close()
		return apperrors.IOFailureError("write", destPath, err)
	}
	if err := wr.Close(); err != nil {
		return apperrors.IOFailureError("close", destPath, err)
	}

	preserveMetadata(destPath, info)
	return nil
}

func (c *smallFileCopier) copyData(wr, rd *os.File, sourcePath string) error {
	if c.clone {
		err := platform.Clone(wr, rd)
		if err == nil {
			return nil
		}
		log.WithError(err).Debugf("Reflink of %s unavailable, copying data", sourcePath)
		c.clone = false
	}
	_, err := io.Copy(wr, rd)
	return err
}

// preserveMetadata transfers mode and timestamps from the source. Failures
// only warn; the content is already complete.
func preserveMetadata(name string, info os.FileInfo) {
	if err := os.Chmod(name, info.Mode().Perm()); err != nil {
		log.WithError(err).Warnf("Could not set permissions of %s", name)
	}
	mtime := info.ModTime()
	if err := os.Chtimes(name, mtime, mtime); err != nil {
		log.WithError(err).Warnf("Could not set timestamps of %s", name)
	}
}
