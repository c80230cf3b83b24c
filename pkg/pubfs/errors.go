package pubfs

import (
	"errors"
	"io/fs"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := src.Copy(ctx, dest)
//	if errors.Is(err, pubfs.ErrWouldOverwrite) {
//	    // Destination has different content; retry with fstree.WithOverwrite(true)
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrWouldOverwrite indicates a copy would replace a destination with different content.
	ErrWouldOverwrite = errors.New("would overwrite")

	// ErrSourceNotFound indicates the source of a copy or move does not exist.
	ErrSourceNotFound = errors.New("source file does not exist")

	// ErrRetryExhausted indicates every allowed attempt failed.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrUnsupportedAlgorithm indicates the requested digest algorithm is unknown.
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")

	// ErrNotADirectory indicates a path exists but is not a directory.
	ErrNotADirectory = errors.New("not a directory")

	// ErrNotApproved indicates the user declined a destructive operation.
	ErrNotApproved = errors.New("operation not approved")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrUnsupportedAlgorithm):
		return ExitConfigError
	case errors.Is(err, ErrWouldOverwrite):
		return ExitWouldOverwrite
	case errors.Is(err, ErrRetryExhausted):
		return ExitRetryExhausted
	case errors.Is(err, ErrSourceNotFound), errors.Is(err, fs.ErrNotExist):
		return ExitNotFound
	}

	if isUsageError(err) {
		return ExitUsageError
	}

	return ExitGeneralError
}

// isUsageError recognizes argument and flag errors produced by cobra.
func isUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"invalid argument",
		"required flag",
		"missing required argument",
	} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return strings.HasPrefix(msg, "accepts ") && strings.Contains(msg, "arg(s)")
}
