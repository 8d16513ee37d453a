package commands

import (
	"github.com/robgonnella/sweep/internal/core"
	"github.com/robgonnella/sweep/internal/logger"
	"github.com/robgonnella/sweep/internal/output"
	"github.com/spf13/cobra"
)

// creates and returns the "scan" command
func scan(props *CommandProps) *cobra.Command {
	conf := props.Core.Conf()

	var ports string
	var outFile string

	opts := core.ScanOptionsFromConfig("", conf)

	cmd := &cobra.Command{
		Use:   "scan <host>",
		Short: "Sweeps ports on a single host",
		Example: "  sweep scan 127.0.0.1\n" +
			"  sweep scan example.com -p 22,80,443 --banner\n" +
			"  sweep scan 10.0.0.5 -p 1-1024 --concurrency 200 -o results.json",
		Args: inputArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()

			opts.Host = args[0]

			// an empty ports flag falls back to the configured default
			if ports != "" {
				opts.Ports = ports
			}

			stop := props.Core.Monitor()

			report, err := props.Core.Scan(cmd.Context(), opts)

			stop()

			if report == nil {
				return err
			}

			if writeErr := output.WritePorts(cmd.OutOrStdout(), report, opts.Banner); writeErr != nil {
				return writeErr
			}

			if report.Cancelled {
				log.Warn().
					Int("completed", len(report.Results)).
					Int("requested", len(report.Ports)).
					Msg("scan cancelled, results are partial")
			}

			if outFile != "" {
				settings := output.SweepSettings{
					Timeout: opts.Timeout,
					Workers: opts.Concurrency,
					Engine:  opts.Engine,
				}

				if writeErr := output.WriteJSONFile(outFile, report, settings); writeErr != nil {
					return writeErr
				}

				log.Info().Str("file", outFile).Msg("Results written")
			}

			return err
		},
	}

	cmd.Flags().StringVarP(&ports, "ports", "p", "", "ports to sweep e.g. 22,80,8000-8100 (default from config: "+conf.Sweep.Ports+")")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", opts.Timeout, "per probe timeout")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", opts.Concurrency, "maximum in-flight probes")
	cmd.Flags().IntVar(&opts.Rate, "rate", opts.Rate, "maximum probes per second, 0 for unlimited")
	cmd.Flags().BoolVar(&opts.Banner, "banner", opts.Banner, "grab a short banner from open ports")
	cmd.Flags().StringVar(&opts.Engine, "engine", opts.Engine, "sweep engine: connect or nmap")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "write JSON results to file")
	cmd.Flags().BoolVar(&opts.NoSave, "no-save", opts.NoSave, "do not store the report")

	return cmd
}
