package cli

import (
	"errors"

	"github.com/yaklabco/md2docx/pkg/runner"
)

// Exit codes for md2docx.
const (
	// ExitSuccess indicates every file converted.
	ExitSuccess = 0

	// ExitFailure indicates at least one file failed, or the command itself failed.
	ExitFailure = 1
)

// ExitCodeFromResult determines the exit code of a conversion run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitFailure
	}
	return ExitSuccess
}

// ExitCodeFromError determines the exit code of a command error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}

// IsSilentError reports whether err only signals the exit status and has
// already been reported line by line.
func IsSilentError(err error) bool {
	return errors.Is(err, ErrConversionFailed)
}
