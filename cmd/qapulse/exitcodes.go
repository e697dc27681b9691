package main

import (
	"fmt"

	"github.com/davetashner/qapulse/internal/pipeline"
)

// Exit codes for the qapulse CLI.
const (
	ExitOK             = 0 // Every tab loaded.
	ExitInvalidArgs    = 1 // Invalid arguments or configuration.
	ExitPartialFailure = 2 // Some tabs failed, partial output written.
	ExitTotalFailure   = 3 // No tab loaded.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitPartialFailure:
			msg = "qapulse: some tabs failed to load"
		case ExitTotalFailure:
			msg = "qapulse: no tab could be loaded"
		default:
			msg = "qapulse: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}

// statusError maps a view status to the command's error, nil when all is well.
func statusError(s pipeline.Status) error {
	switch s {
	case pipeline.StatusPartial:
		return exitError(ExitPartialFailure, "")
	case pipeline.StatusNone:
		return exitError(ExitTotalFailure, "")
	default:
		return nil
	}
}
