// Package exitcodes contains the constants representing possible mybin exit
// error codes.
package exitcodes

// ExitCode is just a type representing a process exit code for mybin.
type ExitCode uint8

// List of exit codes used by mybin. Values should be between 0 and 125:
// https://unix.stackexchange.com/questions/418784/what-is-the-min-and-max-values-of-exit-codes-in-linux
const (
	// GenericError is the fallback for fatal errors without a more specific
	// code, e.g. a failed file copy.
	GenericError ExitCode = 1
	// UsageError covers bad invocations and unusable environments: an entry
	// proto outside the base directory, a missing external executable, or a
	// failed compiler run.
	UsageError ExitCode = 2
	// GoPanic is returned when a command panicked unexpectedly.
	GoPanic ExitCode = 3
)
