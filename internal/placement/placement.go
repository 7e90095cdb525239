// Package placement splits a batch of copy indices into worker shards.
//
// A batch of N copies is divided across W workers so that every worker owns
// one contiguous, half-open range of indices. The first N mod W workers get
// one extra copy; workers that would receive nothing are dropped, so asking
// for more workers than copies simply yields N single-copy shards.
//
// Because the ranges are disjoint, each worker writes only to its own
// destination paths and no locking is needed on the destination side.
//
// Example:
//
//	sizes, starts, _ := placement.Partition(10, 4)
//	// sizes  = [3 3 2 2]
//	// starts = [0 3 6 8]
package placement

import (
	"github.com/zzenonn/zreplica/internal/domain"
	apperrors "github.com/zzenonn/zreplica/internal/errors"
)

// Partition returns the shard sizes and start offsets for total copies over
// workers. Sizes sum to total and differ by at most one.
func Partition(total, workers int) (sizes []int, starts []int, err error) {
	if total < 1 {
		return nil, nil, apperrors.InvalidArgumentError("count", total)
	}
	if workers < 1 {
		return nil, nil, apperrors.InvalidArgumentError("workers", workers)
	}

	sizes = divide(total, workers)
	return sizes, offsets(sizes), nil
}

// Plan is Partition expressed as shards.
func Plan(total, workers int) ([]domain.Shard, error) {
	sizes, starts, err := Partition(total, workers)
	if err != nil {
		return nil, err
	}

	shards := make([]domain.Shard, len(sizes))
	for i := range sizes {
		shards[i] = domain.Shard{Start: starts[i], Size: sizes[i]}
	}
	return shards, nil
}

// divide hands out floor(total/parts) to each part, gives the remainder to the
// leading parts, and drops parts that end up empty.
func divide(total, parts int) []int {
	base, remainder := total/parts, total%parts

	result := make([]int, 0, parts)
	for i := 0; i < parts; i++ {
		size := base
		if i < remainder {
			size++
		}
		if size == 0 {
			break
		}
		result = append(result, size)
	}
	return result
}

// offsets returns the running sum of sizes preceding each entry.
func offsets(sizes []int) []int {
	starts := make([]int, len(sizes))
	sum := 0
	for i, size := range sizes {
		starts[i] = sum
		sum += size
	}
	return starts
}
