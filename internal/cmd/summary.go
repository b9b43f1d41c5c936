package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pcdshub/epics-module-usage-summary/internal/epics"
	"github.com/pcdshub/epics-module-usage-summary/internal/ioc"
	"github.com/pcdshub/epics-module-usage-summary/internal/output"
	"github.com/pcdshub/epics-module-usage-summary/internal/report"
	"github.com/pcdshub/epics-module-usage-summary/internal/scan"
	"github.com/pcdshub/epics-module-usage-summary/internal/stats"
)

// NewSummaryCmd creates the summary command.
func NewSummaryCmd() *cobra.Command {
	var (
		iocsFlag     string
		templateFlag string
		outputFlag   string
		formatFlag   string
	)

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Scan all IOCs and summarize module version usage",
		Long: `Scan every IOC in the whatrecord metadata feed, resolve and parse its
RELEASE file, and print per-module usage statistics.

The human-readable summary goes to stderr; the report (HTML by default)
goes to stdout or to --output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			iocsFile := loadedConfig.IOCsFile
			if iocsFlag != "" {
				iocsFile = iocsFlag
			}
			templateFile := loadedConfig.TemplateFile
			if templateFlag != "" {
				templateFile = templateFlag
			}
			outputFile := loadedConfig.OutputFile
			if outputFlag != "" {
				outputFile = outputFlag
			}

			format := output.ParseFormat(loadedConfig.Format)
			if formatFlag != "" {
				format = output.Format(strings.ToLower(formatFlag))
				if !format.IsValid() {
					return WrapValidation(
						fmt.Errorf("unknown format %q", formatFlag), "parsing --format")
				}
			}

			return runSummary(cmd, iocsFile, templateFile, outputFile, format)
		},
	}

	summaryCmd.Flags().StringVar(&iocsFlag, "iocs", "", "Path to the whatrecord IOC feed (default: iocs.json)")
	summaryCmd.Flags().StringVar(&templateFlag, "template", "", "Path to an HTML summary template (default: embedded)")
	summaryCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the report to this file instead of stdout")
	summaryCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Report format: html, text, none (default: html)")

	return summaryCmd
}

func runSummary(cmd *cobra.Command, iocsFile, templateFile, outputFile string, format output.Format) error {
	iocs, err := ioc.Load(iocsFile)
	if err != nil {
		return WrapNotFound(err, "loading IOC feed")
	}
	output.Debug("loaded IOC feed", "path", iocsFile, "iocs", len(iocs))

	scanner := scan.New(epics.NewClassifier(epics.DefaultRules()))

	var statistics *stats.Statistics
	err = output.RunWithSpinner(cmd.Context(), func() error {
		statistics = scanner.Run(iocs)
		return nil
	}, output.WithTitle(fmt.Sprintf("Scanning %d IOCs...", len(iocs))))
	if err != nil {
		return err
	}

	if output.IsTTY() {
		fmt.Fprint(os.Stderr, report.SummaryTable(statistics))
	} else {
		report.PrintSummary(os.Stderr, statistics)
	}

	var contents string
	switch format {
	case output.FormatNone:
		return nil
	case output.FormatText:
		var buf strings.Builder
		report.PrintSummary(&buf, statistics)
		contents = buf.String()
	case output.FormatHTML:
		contents, err = report.RenderHTML(statistics, templateFile)
		if err != nil {
			return err
		}
	}

	if outputFile == "" || outputFile == "-" {
		output.Print(contents)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("writing summary to %s: %w", outputFile, err)
	}
	output.Info("wrote summary", "path", outputFile, "format", format)
	return nil
}
