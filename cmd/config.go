package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/ignite-timer/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every config key and its value",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, key := range config.Keys(app.config) {
			v, _ := config.Value(app.config, key)
			fmt.Fprintf(out, "%-24s %s\n", key, v)
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:     "set <key> <value>",
	Short:   "Set a config key",
	Example: `  ignite config set timer.default_minutes 50`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Set(args[0], args[1])
		if err != nil {
			return err
		}
		app.config = cfg
		v, _ := config.Value(cfg, args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], v)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
}
