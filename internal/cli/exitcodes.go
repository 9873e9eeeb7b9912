package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/htmlindent/internal/configloader"
	"github.com/yaklabco/htmlindent/pkg/runner"
)

// Exit codes for htmlindent.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates lint completed but found errors.
	ExitLintErrors = 1

	// ExitLintWarnings indicates lint found warnings and --strict was set.
	ExitLintWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrLintIssuesFound is returned when lint issues decide the exit code.
var ErrLintIssuesFound = errors.New("lint issues found")

// ExitError carries a process exit code through cobra's error return.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var verr *configloader.ValidationError
	if errors.As(err, &verr) {
		return ExitConfigError
	}

	return ExitInternalError
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.Stats.DiagnosticsBySeverity["error"] > 0 {
		return ExitLintErrors
	}

	if strict && result.Stats.DiagnosticsBySeverity["warning"] > 0 {
		return ExitLintWarnings
	}

	if result.Stats.FilesErrored > 0 {
		return ExitIOError
	}

	return ExitSuccess
}
