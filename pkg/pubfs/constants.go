package pubfs

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // Operation completed successfully
	ExitGeneralError   = 1  // Unknown or unclassified error
	ExitUsageError     = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitConfigError    = 10 // Invalid configuration
	ExitNotFound       = 11 // Source path does not exist
	ExitWouldOverwrite = 12 // Destination differs and overwrite was not requested
	ExitRetryExhausted = 13 // Transient failures outlasted the retry budget
)

const (
	// DefaultHashAlgorithm is the digest used to detect identical files before copying.
	DefaultHashAlgorithm = "md5"

	// DefaultRetryBaseDelay is the BASE unit of the retry backoff: attempt n waits
	// roughly 2^(n-1) * DefaultRetryBaseDelay.
	DefaultRetryBaseDelay = 20 * time.Millisecond

	// DefaultRetryMaxDelay caps a single backoff wait.
	DefaultRetryMaxDelay = 30 * time.Second

	// DefaultCopyAttempts is the total number of byte-copy attempts made by File.Copy.
	DefaultCopyAttempts = 3

	// DirPerm is the permission used for directories created by EnsureExists.
	DirPerm = 0o755

	// FilePerm is the permission used for files created by Write.
	FilePerm = 0o644

	// ConfigFileName is the project configuration file looked up by the CLI.
	ConfigFileName = "pubfs.yaml"
)
