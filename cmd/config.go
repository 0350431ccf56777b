package cmd

import (
	"fmt"
	"path"

	"github.com/relloyd/deltapipe/actions"
	"github.com/relloyd/deltapipe/config"
	c "github.com/relloyd/deltapipe/constants"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure default values",
	Long: fmt.Sprintf(`Configure default event parameters and flag values, where:

- Defaults are stored in file ~/%v`, path.Join(c.MainDir, config.MainFileFullName)),
}

var defaultCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Configure default values for event parameters and flags",
	Long: `Configure default values, where:

- Keys named after event parameters (e.g. db_catalog) are used when a trigger does not supply them
- Keys named after flags (e.g. log-level) set the default for the flag`,
}

var defaultAddCfg = actions.DefaultAddConfig{}

var defaultAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or set a default value",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := getDefaultsFile()
		if err != nil {
			return err
		}
		defaultAddCfg.ConfigFile = f
		defaultAddCfg.Out = cmd.OutOrStdout()
		return actions.RunDefaultAdd(&defaultAddCfg)
	},
}

var configDefaultListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := getDefaultsFile()
		if err != nil {
			return err
		}
		keys, err := f.GetAllKeys()
		if err != nil {
			return err
		}
		var val string
		for _, k := range keys { // for each key...
			if err := f.Get(k, &val); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%v=%v\n", k, val)
		}
		return nil
	},
}

var defaultRemoveCfg = actions.DefaultRemoveConfig{}

var defaultRemoveCmd = &cobra.Command{
	Use:     "remove",
	Aliases: []string{"rm", "del", "delete"},
	Short:   "Remove a default value",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := getDefaultsFile()
		if err != nil {
			return err
		}
		defaultRemoveCfg.ConfigFile = f
		defaultRemoveCfg.Out = cmd.OutOrStdout()
		return actions.RunDefaultRemove(&defaultRemoveCfg)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(defaultCmd)
	defaultCmd.AddCommand(defaultAddCmd, configDefaultListCmd, defaultRemoveCmd)
	// add
	defaultAddCmd.Flags().SortFlags = false
	defaultAddCmd.Flags().StringVarP(&defaultAddCfg.Key, "key", "k", "", "* The key to set in config. Match the name of an\n"+
		"event parameter or flag to have this value take effect")
	defaultAddCmd.Flags().StringVarP(&defaultAddCfg.Value, "value", "v", "", "* The default value to set")
	defaultAddCmd.Flags().BoolVarP(&defaultAddCfg.Force, "force", "f", false, "Overwrite existing values")
	_ = defaultAddCmd.MarkFlagRequired("key")
	_ = defaultAddCmd.MarkFlagRequired("value")
	defaultAddCmd.SilenceUsage = true
	// remove
	defaultRemoveCmd.Flags().StringVarP(&defaultRemoveCfg.Key, "key", "k", "", "* The key to remove from config")
	_ = defaultRemoveCmd.MarkFlagRequired("key")
	defaultRemoveCmd.SilenceUsage = true
}
