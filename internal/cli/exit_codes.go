package cli

import (
	"github.com/ariel-frischer/tasknotify/internal/cli/shared"
)

// Exit codes for the tasknotify CLI (re-exported from shared)
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = shared.ExitSuccess

	// ExitFailure indicates a general failure
	ExitFailure = shared.ExitFailure

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = shared.ExitInvalidArguments

	// ExitMissingDependencies indicates required tools or settings are missing
	ExitMissingDependencies = shared.ExitMissingDependency
)

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}

// IsSilent reports whether err has nothing to print (re-exported from shared).
func IsSilent(err error) bool {
	return shared.IsSilent(err)
}
