package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pcdshub/epics-module-usage-summary/internal/config"
	"github.com/pcdshub/epics-module-usage-summary/internal/output"
	"github.com/pcdshub/epics-module-usage-summary/internal/version"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool

	// Loaded configuration (populated during PersistentPreRunE)
	loadedConfig *config.Config
)

// NewRootCmd creates the root command for the epics-usage CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "epics-usage",
		Short: "EPICS module usage statistics",
		Long: `epics-usage inventories the module dependencies declared in the RELEASE
files of a fleet of IOCs and summarizes which module versions are in
use, by how many applications and IOCs, and how fragmented that usage
is.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to config file (env: EPICS_USAGE_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", false, "Show timestamps in log output")

	rootCmd.AddCommand(NewSummaryCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().Load(configFlag)
	if err != nil {
		return WrapValidation(err, "loading configuration")
	}
	loadedConfig = cfg

	// Timestamps precedence: flag (if explicitly set) > config > verbose.
	logCfg := output.LogConfig{Verbose: verboseFlag}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	info := version.GetInfo()
	output.Debug("epics-usage started", "version", info.Version)

	return nil
}
