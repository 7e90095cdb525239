package placement

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/zzenonn/zreplica/internal/errors"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		workers    int
		wantSizes  []int
		wantStarts []int
	}{
		{"even split", 8, 4, []int{2, 2, 2, 2}, []int{0, 2, 4, 6}},
		{"remainder to leading workers", 10, 4, []int{3, 3, 2, 2}, []int{0, 3, 6, 8}},
		{"single worker", 5, 1, []int{5}, []int{0}},
		{"more workers than copies", 3, 8, []int{1, 1, 1}, []int{0, 1, 2}},
		{"single copy", 1, 16, []int{1}, []int{0}},
		{"templated example", 4, 2, []int{2, 2}, []int{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sizes, starts, err := Partition(tt.total, tt.workers)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSizes, sizes)
			assert.Equal(t, tt.wantStarts, starts)
		})
	}
}

// TestPartition_CoversRange checks that for every N and W the shards tile
// [0, N) exactly with balanced sizes.
func TestPartition_CoversRange(t *testing.T) {
	for total := 1; total <= 64; total++ {
		for workers := 1; workers <= 40; workers++ {
			shards, err := Plan(total, workers)
			require.NoError(t, err)

			floor := total / workers
			ceil := (total + workers - 1) / workers
			next := 0
			for _, s := range shards {
				require.Equal(t, next, s.Start, "gap or overlap at N=%d W=%d", total, workers)
				require.Positive(t, s.Size)
				require.LessOrEqual(t, s.Size, ceil)
				if total >= workers {
					require.GreaterOrEqual(t, s.Size, floor)
				}
				next = s.End()
			}
			require.Equal(t, total, next, "shards do not cover [0, %d) with W=%d", total, workers)

			wantShards := workers
			if total < workers {
				wantShards = total
			}
			require.Len(t, shards, wantShards)
		}
	}
}

func TestPartition_InvalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		workers int
	}{
		{"zero count", 0, 4},
		{"negative count", -1, 4},
		{"zero workers", 4, 0},
		{"negative workers", 4, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Partition(tt.total, tt.workers)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidArgument), "got %v", err)
		})
	}
}
