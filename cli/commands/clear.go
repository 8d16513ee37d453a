package commands

import (
	"os"

	"github.com/robgonnella/sweep/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

/**
 * Command to remove config, log and database files
 */
func clear() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clears config, log and database files",
		Args:  inputArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()

			files := []struct {
				key  string
				name string
			}{
				{key: "config-file", name: "config"},
				{key: "log-file", name: "log"},
				{key: "database-file", name: "database"},
			}

			for _, f := range files {
				path := viper.GetString(f.key)

				if path == "" {
					continue
				}

				if err := os.RemoveAll(path); err != nil {
					return err
				}

				log.Info().Str("file", path).Msgf("removed %s file", f.name)
			}

			return nil
		},
	}

	return cmd
}
