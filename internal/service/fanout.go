package service

import (
	"context"
	"errors"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	apperrors "github.com/zzenonn/zreplica/internal/errors"
	"github.com/zzenonn/zreplica/internal/platform"
)

// chunkSource yields consecutive slices of the source. A returned slice is
// only valid until the next call. The end of the source is io.EOF.
type chunkSource interface {
	next() ([]byte, error)
}

// bufferedSource reads chunks into one reusable buffer.
type bufferedSource struct {
	r   io.Reader
	buf []byte
}

func (s *bufferedSource) next() ([]byte, error) {
	n, err := io.ReadFull(s.r, s.buf)
	switch {
	case err == nil, errors.Is(err, io.ErrUnexpectedEOF):
		return s.buf[:n], nil
	case errors.Is(err, io.EOF):
		return nil, io.EOF
	default:
		return nil, err
	}
}

// mappedSource slices chunks out of a memory-mapped region.
type mappedSource struct {
	data  []byte
	off   int
	chunk int
}

func (s *mappedSource) next() ([]byte, error) {
	if s.off >= len(s.data) {
		return nil, io.EOF
	}
	end := min(s.off+s.chunk, len(s.data))
	b := s.data[s.off:end]
	s.off = end
	return b, nil
}

// fanOutCopier reads a source once and writes every chunk to all open
// destinations before reading the next, so peak memory is one chunk no
// matter how many copies are made.
type fanOutCopier struct {
	chunkSize int  // zero picks StreamChunkSize per source
	mapped    bool // source chunks from a memory mapping instead of reads
}

// Copy replicates sourcePath into every path.
func (c *fanOutCopier) Copy(ctx context.Context, sourcePath string, paths []string, bar progress) error {
	src, err := os.Open(sourcePath)
	if err != nil {
		return apperrors.IOFailureError("open", sourcePath, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return apperrors.IOFailureError("stat", sourcePath, err)
	}

	hs, err := openHandles(paths)
	if err != nil {
		return err
	}
	defer closeHandles(hs)

	return c.stream(ctx, src, sourcePath, 0, info.Size(), hs, bar)
}

// stream copies src[offset:size) to the current position of every handle.
func (c *fanOutCopier) stream(ctx context.Context, src *os.File, sourcePath string, offset, size int64, hs *handleSet, bar progress) error {
	chunk := c.chunkSize
	if chunk <= 0 {
		chunk = StreamChunkSize(size)
	}

	var source chunkSource
	if c.mapped {
		data, release, err := platform.Map(src, size)
		if err == nil {
			defer func() {
				if err := release(); err != nil {
					log.WithError(err).Warnf("Failed to unmap %s", sourcePath)
				}
			}()
			source = &mappedSource{data: data, off: int(offset), chunk: chunk}
		} else {
			log.WithError(err).Warnf("Mapping %s failed, reading into buffer instead", sourcePath)
		}
	}
	if source == nil {
		source = &bufferedSource{
			r:   io.NewSectionReader(src, offset, size-offset),
			buf: make([]byte, chunk),
		}
	}

	log.WithFields(log.Fields{
		"source":       sourcePath,
		"destinations": len(hs.files),
		"chunk_size":   chunk,
		"mapped":       c.mapped,
	}).Debug("Streaming fan-out copy")

	return fanOut(ctx, source, sourcePath, hs, bar)
}

// fanOut drains source into hs. Cancellation is only observed between chunks.
func fanOut(ctx context.Context, source chunkSource, sourcePath string, hs *handleSet, bar progress) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		chunk, err := source.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return apperrors.IOFailureError("read", sourcePath, err)
		}

		if err := hs.writeAll(chunk); err != nil {
			return err
		}
		_ = bar.Add(len(chunk) * len(hs.files))
	}
}

// closeHandles releases hs, logging rather than returning close errors.
func closeHandles(hs *handleSet) {
	if err := hs.Close(); err != nil {
		log.WithError(err).Warn("Failed to close destination handles")
	}
}
