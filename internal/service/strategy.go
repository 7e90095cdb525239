package service

import "github.com/zzenonn/zreplica/internal/domain"

const (
	// SmallFileThreshold is the largest source copied file-by-file.
	SmallFileThreshold = 1 << 20

	// ZeroCopyChunkSize bounds one sendfile call per destination.
	ZeroCopyChunkSize = 16 << 20
)

// SelectStrategy picks the copy strategy for a source of size bytes. Small
// files go through a per-destination copy because call overhead dominates;
// larger ones fan out from a single read pass.
func SelectStrategy(size int64, zeroCopy, mmap bool) domain.CopyStrategy {
	switch {
	case size <= SmallFileThreshold:
		return domain.SmallFileCopy
	case zeroCopy:
		return domain.ZeroCopyFanOut
	case mmap:
		return domain.MemoryMappedFanOut
	default:
		return domain.ChunkedStreamingFanOut
	}
}

// StreamChunkSize returns the read-buffer size for a streaming fan-out of a
// source of size bytes. Larger files get larger chunks to amortize calls.
func StreamChunkSize(size int64) int {
	switch {
	case size > 100<<20:
		return 8 << 20
	case size > 10<<20:
		return 4 << 20
	default:
		return 1 << 20
	}
}
