package modsync

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork          = errors.New("network failure")
	ErrFilesystem       = errors.New("filesystem failure")
	ErrInvalidName      = errors.New("invalid managed file name")
	ErrNoVersion        = errors.New("no matching version")
	ErrNoPrimaryFile    = errors.New("no primary file")
	ErrAlreadyInstalled = errors.New("already installed")
	ErrUpToDate         = errors.New("latest version already installed")
)

// NetworkError is returned when a request could not complete
// or the server responded with a non-success status.
type NetworkError struct {
	Op  string
	URL string

	// StatusCode is zero if no response was received.
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// FilesystemError is returned when writing, renaming or removing
// a file in the mods directory fails.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

func (e *FilesystemError) Is(target error) bool {
	return target == ErrFilesystem
}
