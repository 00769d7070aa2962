package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(ConfigCmd)
}

// ConfigCmd prints the effective config, the defaults merged with the config file
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "print the effective config",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := userConfig.YAML()
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}
