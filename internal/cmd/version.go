package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pcdshub/epics-module-usage-summary/internal/output"
	"github.com/pcdshub/epics-module-usage-summary/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	var jsonFlag bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()
			if jsonFlag {
				contents, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding version info: %w", err)
				}
				output.Println(string(contents))
				return nil
			}
			output.Println(info.String())
			return nil
		},
	}

	versionCmd.Flags().BoolVar(&jsonFlag, "json", false, "Output version information as JSON")
	return versionCmd
}
