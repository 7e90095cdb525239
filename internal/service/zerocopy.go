package service

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	apperrors "github.com/zzenonn/zreplica/internal/errors"
	"github.com/zzenonn/zreplica/internal/platform"
)

// transferFunc moves length bytes of src at offset to dst's current position
// and reports how many bytes were written.
type transferFunc func(dst, src *os.File, offset, length int64) (int64, error)

// zeroCopyReplicator fans a source out with a kernel fd-to-fd transfer. When
// the transfer fails it hands the unfinished remainder to the streaming
// copier.
type zeroCopyReplicator struct {
	chunkSize int
	transfer  transferFunc
	fallback  *fanOutCopier
}

func newZeroCopyReplicator(chunkSize int, fallback *fanOutCopier) *zeroCopyReplicator {
	if chunkSize <= 0 {
		chunkSize = ZeroCopyChunkSize
	}
	return &zeroCopyReplicator{
		chunkSize: chunkSize,
		transfer:  platform.Transfer,
		fallback:  fallback,
	}
}

// Copy replicates sourcePath into every path. The returned flag reports
// whether the streaming fallback had to finish the batch.
func (z *zeroCopyReplicator) Copy(ctx context.Context, sourcePath string, paths []string, bar progress) (bool, error) {
	src, err := os.Open(sourcePath)
	if err != nil {
		return false, apperrors.IOFailureError("open", sourcePath, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return false, apperrors.IOFailureError("stat", sourcePath, err)
	}
	size := info.Size()

	hs, err := openHandles(paths)
	if err != nil {
		return false, err
	}
	defer closeHandles(hs)

	chunk := int64(z.chunkSize)
	for offset := int64(0); offset < size; offset += chunk {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		length := min(chunk, size-offset)
		for i, dst := range hs.files {
			if _, err := z.transfer(dst, src, offset, length); err != nil {
				log.WithFields(log.Fields{
					"destination": hs.paths[i],
					"offset":      offset,
				}).WithError(err).Warn("Zero-copy transfer failed, falling back to streaming copy")
				return true, z.resume(ctx, src, sourcePath, offset, size, hs, bar)
			}
		}
		_ = bar.Add(int(length) * len(hs.files))
	}
	return false, nil
}

// resume finishes the batch with the streaming copier. Every destination has
// at least offset bytes, so all are cut back to offset before streaming on.
func (z *zeroCopyReplicator) resume(ctx context.Context, src *os.File, sourcePath string, offset, size int64, hs *handleSet, bar progress) error {
	if err := hs.rewind(offset); err != nil {
		return err
	}
	return z.fallback.stream(ctx, src, sourcePath, offset, size, hs, bar)
}
