package cli

import (
	"fmt"

	"github.com/r2dtools/sitediscovery/config"
	"github.com/spf13/cobra"
)

var InitConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write effective settings to config.yaml in the work directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.GetConfig(workDir, cmd.Flags())

		if err != nil {
			return err
		}

		if err := config.CreateConfigFileIfNotExists(conf); err != nil {
			return err
		}

		if err := conf.SetParams(conf.ToMap()); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n", conf.ConfigFilePath)

		return nil
	},
}
