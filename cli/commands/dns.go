package commands

import (
	"github.com/robgonnella/sweep/internal/core"
	"github.com/robgonnella/sweep/internal/logger"
	"github.com/robgonnella/sweep/internal/output"
	"github.com/spf13/cobra"
)

// creates and returns the "dns" command
func dns(props *CommandProps) *cobra.Command {
	var outFile string

	opts := core.DNSOptionsFromConfig("", props.Core.Conf())

	cmd := &cobra.Command{
		Use:   "dns <domain>",
		Short: "Looks up A, MX, NS and TXT records of a domain",
		Long: "Queries the A, MX, NS and TXT records of a domain concurrently. A\n" +
			"failed lookup is reported alongside the records that did resolve.",
		Example: "  sweep dns example.com\n" +
			"  sweep dns example.com --nameserver 8.8.8.8 -o example.json",
		Args: inputArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()

			opts.Domain = args[0]

			result, err := props.Core.DNS(cmd.Context(), opts)

			if err != nil {
				return err
			}

			if err := output.WriteDNS(cmd.OutOrStdout(), result); err != nil {
				return err
			}

			if len(result.Errors) > 0 {
				log.Warn().
					Int("failed", len(result.Errors)).
					Msg("some lookups failed")
			}

			if outFile != "" {
				if err := output.WriteDNSJSONFile(outFile, result); err != nil {
					return err
				}

				log.Info().Str("file", outFile).Msg("Results written")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Nameserver, "nameserver", opts.Nameserver, "nameserver ip to query, system resolver when empty")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout, "per query timeout")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "write JSON results to file")

	return cmd
}
