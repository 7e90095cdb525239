// Package service implements single-source, many-destination file
// replication.
//
// ReplicationService makes byte-identical copies. It picks one strategy per
// request from the source size and the platform's capabilities:
//   - sources up to 1 MiB are copied once per destination
//   - larger sources are read once and every chunk is written to all
//     destinations before the next chunk is read, either through sendfile,
//     a memory mapping or a plain read buffer
//
// TemplateService writes text copies in which a placeholder token is replaced
// by a fresh unique value per copy, spreading the copies over a pool of
// concurrent workers.
//
// Inputs are validated before any destination file is created. Files written
// before an I/O failure are left in place.
package service

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/zzenonn/zreplica/internal/domain"
	"github.com/zzenonn/zreplica/internal/platform"
)

// Options tunes a ReplicationService.
type Options struct {
	// ChunkSize overrides the chunk-size hint when positive.
	ChunkSize    int
	Capabilities platform.Capabilities
	// PreferMmap maps large sources instead of reading them into a buffer
	// when zero-copy is unavailable.
	PreferMmap bool
}

// Result describes a completed replication.
type Result struct {
	Strategy     domain.CopyStrategy
	Files        int
	BytesPerFile int64
	// FellBack is set when a zero-copy batch was finished by streaming.
	FellBack bool
}

// ReplicationService makes byte-identical copies of one source.
type ReplicationService struct {
	opts Options
}

// NewReplicationService creates a new ReplicationService instance
func NewReplicationService(opts Options) *ReplicationService {
	return &ReplicationService{opts: opts}
}

// Replicate writes req.Count copies of req.SourcePath into req.DestDir named
// "{base}_copy{i}{ext}".
func (s *ReplicationService) Replicate(ctx context.Context, req domain.ReplicationRequest) (Result, error) {
	info, err := validateRequest(req.SourcePath, req.DestDir, req.Count)
	if err != nil {
		return Result{}, err
	}

	paths := domain.CopyNaming(req.SourcePath, req.DestDir).Paths(0, req.Count)
	if err := validatePaths(paths); err != nil {
		return Result{}, err
	}

	size := info.Size()
	caps := s.opts.Capabilities
	strategy := SelectStrategy(size, caps.ZeroCopy, s.opts.PreferMmap && caps.Mmap)
	result := Result{Strategy: strategy, Files: req.Count, BytesPerFile: size}

	log.WithFields(log.Fields{
		"source":   req.SourcePath,
		"size":     size,
		"copies":   req.Count,
		"strategy": strategy,
	}).Debug("Selected copy strategy")

	switch strategy {
	case domain.SmallFileCopy:
		bar := newCountProgress(req.Quiet, req.Count, "copying")
		copier := &smallFileCopier{clone: caps.Clone}
		err = copier.Copy(ctx, req.SourcePath, info, paths, bar)
	case domain.ZeroCopyFanOut:
		bar := newByteProgress(req.Quiet, size*int64(req.Count), "replicating")
		fallback := &fanOutCopier{chunkSize: s.opts.ChunkSize, mapped: s.opts.PreferMmap && caps.Mmap}
		result.FellBack, err = newZeroCopyReplicator(s.opts.ChunkSize, fallback).Copy(ctx, req.SourcePath, paths, bar)
	default:
		bar := newByteProgress(req.Quiet, size*int64(req.Count), "replicating")
		copier := &fanOutCopier{chunkSize: s.opts.ChunkSize, mapped: strategy == domain.MemoryMappedFanOut}
		err = copier.Copy(ctx, req.SourcePath, paths, bar)
	}
	if err != nil {
		return Result{}, err
	}
	return result, nil
}
