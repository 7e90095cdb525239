package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	ErrNotFound           = errors.New("source not found")
	ErrInvalidDestination = errors.New("invalid destination")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrIOFailure          = errors.New("i/o failure")
)

// NotFoundError reports a source path that is missing or not a regular file.
func NotFoundError(path string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, path)
}

// InvalidDestinationError reports a destination that cannot receive copies.
func InvalidDestinationError(path, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidDestination, path, reason)
}

func InvalidArgumentError(name string, value any) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalidArgument, name, value)
}

// IOFailureError wraps an open/read/write/transfer failure on path. Both
// ErrIOFailure and cause remain reachable through errors.Is. A *fs.PathError
// cause already names its op and path, so they are not repeated.
func IOFailureError(op, path string, cause error) error {
	var pathErr *fs.PathError
	if errors.As(cause, &pathErr) {
		return fmt.Errorf("%w: %w", ErrIOFailure, cause)
	}
	return fmt.Errorf("%w: %s %s: %w", ErrIOFailure, op, path, cause)
}
