package commands

import (
	"github.com/robgonnella/sweep/internal/exception"
	"github.com/spf13/cobra"
)

// Process exit codes
const (
	ExitOK         = 0
	ExitError      = 1
	ExitInputError = 2
)

// ExitCode maps the error returned by a command to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if exception.IsInputError(err) {
		return ExitInputError
	}

	return ExitError
}

// flag and argument mistakes are input errors
func flagError(cmd *cobra.Command, err error) error {
	return exception.NewInputError("flags", "", err)
}

func inputArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return exception.NewInputError("arguments", "", err)
		}

		return nil
	}
}
