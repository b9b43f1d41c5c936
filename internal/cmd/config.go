package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pcdshub/epics-module-usage-summary/internal/config"
	"github.com/pcdshub/epics-module-usage-summary/internal/output"
)

// NewConfigCmd creates the config command with its subcommands.
func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage epics-usage configuration",
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigVetCmd())

	return configCmd
}

// newConfigInitCmd creates the config init command.
func newConfigInitCmd() *cobra.Command {
	var forceFlag bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFlag
			if path == "" {
				var err error
				path, err = config.GetConfigFile()
				if err != nil {
					return err
				}
				if err := config.EnsureHomeDir(); err != nil {
					return err
				}
			}

			if _, err := os.Stat(path); err == nil && !forceFlag {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			}

			if err := config.WriteDefault(path); err != nil {
				return err
			}
			output.Info("wrote default config", "path", path)
			return nil
		},
	}

	initCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite an existing config file")
	return initCmd
}

// newConfigVetCmd creates the config vet command.
func newConfigVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadedConfig.Validate(); err != nil {
				return WrapValidation(err, "config is invalid")
			}
			output.Info("config is valid",
				"iocsFile", loadedConfig.IOCsFile,
				"templateFile", loadedConfig.TemplateFile)
			return nil
		},
	}
}
