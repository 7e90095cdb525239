package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzenonn/zreplica/internal/platform"
)

var errCrossDevice = errors.New("cross-device transfer not supported")

// flakyTransfer emulates a kernel transfer with pread+write and fails on
// call number failAt, after writing half of the requested bytes.
type flakyTransfer struct {
	calls  int
	failAt int
}

func (f *flakyTransfer) transfer(dst, src *os.File, offset, length int64) (int64, error) {
	f.calls++
	buf := make([]byte, length)
	if _, err := src.ReadAt(buf, offset); err != nil {
		return 0, err
	}
	if f.calls == f.failAt {
		n, _ := dst.Write(buf[:length/2])
		return int64(n), errCrossDevice
	}
	n, err := dst.Write(buf)
	return int64(n), err
}

func zeroCopyFixture(t *testing.T, size int) (string, []byte) {
	t.Helper()
	data := make([]byte, size)
	_, err := rand.Read(data)
	require.NoError(t, err)

	source := filepath.Join(t.TempDir(), "source.bin")
	require.NoError(t, os.WriteFile(source, data, 0o644))
	return source, data
}

func TestZeroCopyReplicator_FallbackResumesBatch(t *testing.T) {
	const chunk = 64 << 10
	const copies = 3
	source, data := zeroCopyFixture(t, 5*chunk+999)

	tests := []struct {
		name         string
		failAt       int
		wantFellBack bool
	}{
		{"no failure", 0, false},
		{"first call", 1, true},
		{"second destination of first chunk", 2, true},
		{"first destination of third chunk", 2*copies + 1, true},
		{"last call", 6 * copies, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flaky := &flakyTransfer{failAt: tt.failAt}
			z := newZeroCopyReplicator(chunk, &fanOutCopier{chunkSize: 10000})
			z.transfer = flaky.transfer

			paths := destPaths(t, copies)
			bar := &countingProgress{}
			fellBack, err := z.Copy(context.Background(), source, paths, bar)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFellBack, fellBack)
			assert.Equal(t, len(data)*copies, bar.total)

			for _, p := range paths {
				got, err := os.ReadFile(p)
				require.NoError(t, err)
				require.Len(t, got, len(data))
				assert.True(t, bytes.Equal(data, got), p)
			}
		})
	}
}

func TestZeroCopyReplicator_Platform(t *testing.T) {
	if !platform.Probe().ZeroCopy {
		t.Skip("zero-copy transfer not available on this platform")
	}

	source, data := zeroCopyFixture(t, 3<<20+7)
	z := newZeroCopyReplicator(1<<20, &fanOutCopier{})

	paths := destPaths(t, 4)
	fellBack, err := z.Copy(context.Background(), source, paths, noProgress{})
	require.NoError(t, err)
	assert.False(t, fellBack)

	for _, p := range paths {
		got, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(data, got), p)
	}
}

func TestZeroCopyReplicator_Cancelled(t *testing.T) {
	source, _ := zeroCopyFixture(t, 1024)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	z := newZeroCopyReplicator(256, &fanOutCopier{})
	_, err := z.Copy(ctx, source, destPaths(t, 2), noProgress{})
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}
