package main

import (
	"errors"

	"github.com/xtz206/acgnx/internal/subject"
)

// Exit codes.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid paths)
	ExitNotFound    = 3 // Subject not found in the requested source
	ExitSourceError = 4 // Remote API or database unavailable
	ExitDataError   = 5 // Malformed source data
)

// exitCodeFor maps a subject-source error to an exit code.
func exitCodeFor(err error) int {
	switch {
	case subject.IsNotFound(err):
		return ExitNotFound
	case errors.Is(err, subject.ErrSourceUnavailable):
		return ExitSourceError
	case errors.Is(err, subject.ErrMalformed):
		return ExitDataError
	default:
		return ExitError
	}
}

// exitOnError reports the error with its mapped exit code and exits.
func exitOnError(err error, context string) {
	exitWithError(exitCodeFor(err), "%s: %v", context, err)
}
