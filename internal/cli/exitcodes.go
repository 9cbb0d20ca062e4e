package cli

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, relay errors, unexpected failures.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Card not found, column not found.
	ExitNotFound = 3

	// ExitValidation indicates the engine rejected the transition.
	// Use for: Locked columns, non-moderator attempts at moderator
	// operations, grades outside the active mode's domain.
	ExitValidation = 5
)
