package service

import "github.com/schollz/progressbar/v3"

// progress receives increments as work completes. *progressbar.ProgressBar
// satisfies it and is safe for concurrent use.
type progress interface {
	Add(num int) error
}

type noProgress struct{}

func (noProgress) Add(int) error { return nil }

func newByteProgress(quiet bool, total int64, description string) progress {
	if quiet {
		return noProgress{}
	}
	return progressbar.DefaultBytes(total, description)
}

func newCountProgress(quiet bool, total int, description string) progress {
	if quiet {
		return noProgress{}
	}
	return progressbar.Default(int64(total), description)
}
