package service

import (
	"context"
	"errors"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/zzenonn/zreplica/internal/domain"
	apperrors "github.com/zzenonn/zreplica/internal/errors"
	"github.com/zzenonn/zreplica/internal/placement"
)

// TemplateResult describes a completed templated replication.
type TemplateResult struct {
	Files  int
	Shards []domain.Shard
}

// TemplateService writes copies of a text source with a placeholder replaced
// by a unique token per copy. Copies are split into shards and the shards run
// concurrently, one worker each.
type TemplateService struct {
	workers int
	tokens  TokenGenerator
}

// NewTemplateService creates a TemplateService with a pool of workers. A nil
// generator selects UUIDGenerator.
func NewTemplateService(workers int, tokens TokenGenerator) *TemplateService {
	if tokens == nil {
		tokens = UUIDGenerator{}
	}
	return &TemplateService{
		workers: workers,
		tokens:  tokens,
	}
}

// Replicate writes req.Count files named "{base}_{i}{ext}". It returns only
// after every shard has finished; the failures of all shards are joined.
// A failing shard does not stop its siblings.
func (s *TemplateService) Replicate(ctx context.Context, req domain.TemplateRequest) (TemplateResult, error) {
	if _, err := validateRequest(req.SourcePath, req.DestDir, req.Count); err != nil {
		return TemplateResult{}, err
	}
	if s.workers < 1 {
		return TemplateResult{}, apperrors.InvalidArgumentError("workers", s.workers)
	}
	if req.Placeholder == "" {
		return TemplateResult{}, apperrors.InvalidArgumentError("placeholder", `""`)
	}

	naming := domain.TemplateNaming(req.SourcePath, req.DestDir)
	if err := validatePaths(naming.Paths(0, req.Count)); err != nil {
		return TemplateResult{}, err
	}

	shards, err := placement.Plan(req.Count, s.workers)
	if err != nil {
		return TemplateResult{}, err
	}

	data, err := os.ReadFile(req.SourcePath)
	if err != nil {
		return TemplateResult{}, apperrors.IOFailureError("read", req.SourcePath, err)
	}
	content := string(data)

	log.WithFields(log.Fields{
		"source":      req.SourcePath,
		"copies":      req.Count,
		"workers":     s.workers,
		"shards":      len(shards),
		"occurrences": strings.Count(content, req.Placeholder),
	}).Debug("Dispatching templated shards")

	bar := newCountProgress(req.Quiet, req.Count, "templating")

	var g errgroup.Group
	g.SetLimit(s.workers)
	shardErrs := make([]error, len(shards))
	for i, shard := range shards {
		g.Go(func() error {
			shardErrs[i] = s.writeShard(ctx, content, req.Placeholder, naming, shard, bar)
			return shardErrs[i]
		})
	}
	_ = g.Wait()

	if err := errors.Join(shardErrs...); err != nil {
		return TemplateResult{}, err
	}
	return TemplateResult{Files: req.Count, Shards: shards}, nil
}

// writeShard renders and writes every index of shard. content is shared by
// all workers and only read.
func (s *TemplateService) writeShard(ctx context.Context, content, placeholder string, naming domain.NamingScheme, shard domain.Shard, bar progress) error {
	for i := shard.Start; i < shard.End(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rendered := strings.ReplaceAll(content, placeholder, s.tokens.NewToken())
		if err := writeFile(naming.Path(i), rendered); err != nil {
			log.WithFields(log.Fields{
				"shard_start": shard.Start,
				"shard_size":  shard.Size,
				"index":       i,
			}).WithError(err).Error("Templated shard failed")
			return err
		}
		_ = bar.Add(1)
	}
	return nil
}

func writeFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return apperrors.IOFailureError("open", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return apperrors.IOFailureError("write", path, err)
	}
	if err := f.Close(); err != nil {
		return apperrors.IOFailureError("close", path, err)
	}
	return nil
}
