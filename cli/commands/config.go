package commands

import (
	"github.com/robgonnella/sweep/internal/config"
	"github.com/robgonnella/sweep/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// creates and returns the "config" command
func configure(props *CommandProps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Prints the active configuration",
		Args:  inputArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := props.Core.Conf()

			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)

			if err := encoder.Encode(&conf); err != nil {
				return err
			}

			return encoder.Close()
		},
	}

	cmd.AddCommand(configInit(props))

	return cmd
}

// creates and returns the "config init" command
func configInit(props *CommandProps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Writes the default configuration to the config file",
		Args:  inputArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := props.Core.UpdateConfig(*config.Default()); err != nil {
				return err
			}

			logger.New().Info().
				Str("file", viper.GetString("config-file")).
				Msg("wrote default config")

			return nil
		},
	}

	return cmd
}
