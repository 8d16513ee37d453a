package commands

import (
	"os"

	app_info "github.com/robgonnella/sweep/internal/app-info"
	"github.com/robgonnella/sweep/internal/core"
	"github.com/robgonnella/sweep/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CommandProps injected props that can be made available to all commands
type CommandProps struct {
	Core *core.Core
}

// Root builds and returns our root command
func Root(props *CommandProps) *cobra.Command {
	var verbose bool
	var silent bool
	var logToFile bool

	cmd := &cobra.Command{
		Use:           app_info.NAME,
		Short:         "Sweeps hosts and ports for reachability",
		SilenceUsage:  true,
		SilenceErrors: true,
		// This runs before all commands and all sub-commands
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// set logging verbosity for all loggers
			zerolog.SetGlobalLevel(zerolog.InfoLevel)

			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			if silent {
				zerolog.SetGlobalLevel(zerolog.Disabled)
			}

			if logToFile {
				logFile := viper.GetString("log-file")

				file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)

				if err != nil {
					return err
				}

				logger.GlobalSetLogFile(file)
			}

			return nil
		},
	}

	cmd.SetFlagErrorFunc(flagError)

	// Persistent flags available to all commands
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs")
	cmd.PersistentFlags().BoolVar(&silent, "silent", false, "disables all logging")
	cmd.PersistentFlags().BoolVar(&logToFile, "log-to-file", false, "write logs to the log file instead of stderr")

	cmd.AddCommand(scan(props))
	cmd.AddCommand(hosts(props))
	cmd.AddCommand(dns(props))
	cmd.AddCommand(history(props))
	cmd.AddCommand(show(props))
	cmd.AddCommand(remove(props))
	cmd.AddCommand(configure(props))
	cmd.AddCommand(version())
	cmd.AddCommand(clear())

	return cmd
}
