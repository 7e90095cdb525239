package service

import (
	"os"

	apperrors "github.com/zzenonn/zreplica/internal/errors"
	"github.com/zzenonn/zreplica/internal/platform"
)

// validateRequest checks a request before any destination is touched and
// returns the source's file info.
func validateRequest(sourcePath, destDir string, count int) (os.FileInfo, error) {
	info, err := os.Stat(sourcePath)
	if err != nil || !info.Mode().IsRegular() {
		return nil, apperrors.NotFoundError(sourcePath)
	}

	dirInfo, err := os.Stat(destDir)
	if err != nil {
		return nil, apperrors.InvalidDestinationError(destDir, "does not exist")
	}
	if !dirInfo.IsDir() {
		return nil, apperrors.InvalidDestinationError(destDir, "not a directory")
	}
	if err := platform.Writable(destDir); err != nil {
		return nil, apperrors.InvalidDestinationError(destDir, "not writable")
	}

	if count <= 0 {
		return nil, apperrors.InvalidArgumentError("count", count)
	}
	return info, nil
}

// validatePaths rejects destination paths occupied by directories, including
// symlinks that resolve to one.
func validatePaths(paths []string) error {
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return apperrors.InvalidDestinationError(path, "is a directory")
		}
	}
	return nil
}
