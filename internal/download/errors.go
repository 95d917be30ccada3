package download

import (
	"errors"
	"fmt"
)

// Sentinel errors for the download package.
var (
	// ErrIncomplete is returned when the connection closed before
	// Content-Length bytes arrived.
	ErrIncomplete = errors.New("incomplete download")

	// ErrPathTraversal is returned when a derived filename would
	// escape the destination directory.
	ErrPathTraversal = errors.New("path escapes destination directory")
)

// StatusError reports a non-success HTTP status from a download host.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("download failed: %s", e.Status)
}
