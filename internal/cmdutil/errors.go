package cmdutil

import (
	"errors"
	"fmt"
	"strings"
)

// ExitCodeUnresolved is the exit status when at least one template name
// could not be resolved.
const ExitCodeUnresolved = 1

// ExitError ends the command with a specific exit status after its output has
// been written. Main() maps it to the process exit code and prints nothing.
type ExitError struct {
	Code int
	// Unresolved lists the template names that failed, in request order.
	Unresolved []string
}

func (e *ExitError) Error() string {
	if len(e.Unresolved) > 0 {
		return fmt.Sprintf("%d template(s) could not be resolved: %s",
			len(e.Unresolved), strings.Join(e.Unresolved, ", "))
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// UnresolvedError reports the template names a command failed to resolve.
// It returns nil when names is empty.
func UnresolvedError(names []string) error {
	if len(names) == 0 {
		return nil
	}
	return &ExitError{Code: ExitCodeUnresolved, Unresolved: names}
}

// FlagError is a bad --strategy, --json/-v combination, folder name or
// argument count. Main() prints it followed by the command's usage and
// exits with the usage status.
type FlagError struct {
	err error
}

func (e *FlagError) Error() string { return e.err.Error() }
func (e *FlagError) Unwrap() error { return e.err }

// FlagErrorf creates a FlagError with a formatted message.
func FlagErrorf(format string, args ...any) error {
	return &FlagError{err: fmt.Errorf(format, args...)}
}

// FlagErrorWrap marks err, typically from resolver.ParseStrategy or
// engine.ValidateFolderName, as a usage problem.
func FlagErrorWrap(err error) error {
	return &FlagError{err: err}
}

// SilentError is returned after a command has already reported the failure
// itself, as config check does for validation problems.
var SilentError = errors.New("SilentError")
