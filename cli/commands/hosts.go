package commands

import (
	"github.com/robgonnella/sweep/internal/core"
	"github.com/robgonnella/sweep/internal/output"
	"github.com/spf13/cobra"
)

// creates and returns the "hosts" command
func hosts(props *CommandProps) *cobra.Command {
	opts := core.HostsOptionsFromConfig(nil, props.Core.Conf())

	cmd := &cobra.Command{
		Use:   "hosts [cidr|ip]...",
		Short: "Finds hosts that answer on a port",
		Long: "Probes a single port on every address of the given networks. A host\n" +
			"is up when the port is open or actively refuses the connection. With\n" +
			"no arguments the default network of this machine is swept.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Targets = args

			stop := props.Core.Monitor()

			results, err := props.Core.Hosts(cmd.Context(), opts)

			stop()

			if err != nil {
				return err
			}

			return output.WriteHosts(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().Uint16Var(&opts.Port, "port", opts.Port, "port to probe on each host")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout, "per host timeout")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", opts.Concurrency, "maximum in-flight probes")

	return cmd
}
