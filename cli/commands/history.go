package commands

import (
	"github.com/robgonnella/sweep/internal/logger"
	"github.com/robgonnella/sweep/internal/output"
	"github.com/spf13/cobra"
)

// creates and returns the "history" command
func history(props *CommandProps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Lists stored scan reports, newest first",
		Args:  inputArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := props.Core.Reports()

			if err != nil {
				return err
			}

			for _, r := range reports {
				if err := output.WriteSummary(cmd.OutOrStdout(), r); err != nil {
					return err
				}
			}

			return nil
		},
	}

	return cmd
}

// creates and returns the "show" command
func show(props *CommandProps) *cobra.Command {
	var banner bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Prints the results of a stored scan report",
		Args:  inputArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := props.Core.Report(args[0])

			if err != nil {
				return err
			}

			if err := output.WriteSummary(cmd.OutOrStdout(), report); err != nil {
				return err
			}

			return output.WritePorts(cmd.OutOrStdout(), report, banner)
		},
	}

	cmd.Flags().BoolVar(&banner, "banner", true, "include stored banners")

	return cmd
}

// creates and returns the "delete" command
func remove(props *CommandProps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Removes a stored scan report",
		Args:  inputArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := props.Core.DeleteReport(args[0]); err != nil {
				return err
			}

			logger.New().Info().Str("id", args[0]).Msg("removed report")

			return nil
		},
	}

	return cmd
}
