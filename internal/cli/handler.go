package cli

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

// Run wraps common command execution logic: formatter setup from the shared
// --json/--quiet flags, container initialization and teardown.
// Returns a cobra RunE compatible function.
func Run(fn func(ctx context.Context, cmd *cobra.Command, c *CLI, f *OutputFormatter) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		jsonOutput, _ := cmd.Flags().GetBool("json")
		quietMode, _ := cmd.Flags().GetBool("quiet")
		formatter := &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

		c, err := NewCLI(ctx)
		if err != nil {
			if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
				log.Printf("Error formatting error message: %v", fmtErr)
			}
			return err
		}
		defer func() {
			if err := c.Close(); err != nil {
				log.Printf("Error closing CLI: %v", err)
			}
		}()

		return fn(ctx, cmd, c, formatter)
	}
}

// AddOutputFlags registers the agent-friendly flags every command carries.
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// Fail prints a formatted error and returns the exit code for main to use.
func Fail(f *OutputFormatter, code int, errCode, message, suggestion string) error {
	if fmtErr := f.ErrorWithSuggestion(errCode, message, suggestion); fmtErr != nil {
		log.Printf("Error formatting error message: %v", fmtErr)
	}
	return &ExitStatusError{Code: code, Message: message}
}

// ExitStatusError carries an exit code through cobra's error return; main
// unwraps it to set the process status.
type ExitStatusError struct {
	Code    int
	Message string
}

func (e *ExitStatusError) Error() string { return e.Message }
