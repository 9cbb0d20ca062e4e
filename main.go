package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroflect/retroflect/cmd"
	"github.com/retroflect/retroflect/internal/cli"
	"github.com/retroflect/retroflect/internal/logging"
)

func main() {
	if err := logging.Init(); err != nil {
		// Logging is not worth dying for; commands still work without it.
		fmt.Fprintf(os.Stderr, "warning: failed to initialize logging: %v\n", err)
	}

	if err := cmd.Execute(); err != nil {
		var status *cli.ExitStatusError
		if errors.As(err, &status) {
			// The command already printed its formatted error.
			os.Exit(status.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitError)
	}
}
