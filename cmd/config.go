package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get and set repository options",
	Long: `Read or update settings in .gitodb/config.

Supported keys:
  core.compression  zlib level used for new objects, -2 through 9 (-1 is the zlib default)
  core.loglevel     minimum log level: debug, info, warn or error`,
}

var configGetCmd = &cobra.Command{
	Use:          "get <section.key>",
	Short:        "Print the value of a config key",
	SilenceUsage: true,
	Args:         exactArgs(1, "key"),
	RunE:         runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:          "set <section.key> <value>",
	Short:        "Set a config key and save the file",
	SilenceUsage: true,
	Args:         exactArgs(2, "key and value"),
	RunE:         runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	value, err := repo.Config.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	if err := repo.Config.Set(args[0], args[1]); err != nil {
		return err
	}
	return repo.Config.Save()
}
