// Package report renders scan statistics for humans and for the HTML
// summary page.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pcdshub/epics-module-usage-summary/internal/output"
	"github.com/pcdshub/epics-module-usage-summary/internal/stats"
)

// PrintSummary writes the per-dependency usage summary to w, most-used
// dependencies first.
func PrintSummary(w io.Writer, statistics *stats.Statistics) {
	for _, dep := range statistics.DepsByReleaseFileCount() {
		fmt.Fprintf(w,
			"%s is used by %d release files (applications) and %d IOCs with a total of %d versions in use\n",
			dep.Name, len(dep.ByReleaseFile), len(dep.ByIOCName), len(dep.ByVersion))
		if len(dep.ByVersion) > 1 {
			for _, usage := range dep.VersionsByCount() {
				fmt.Fprintf(w, "    %dx %s %s %s\n",
					len(usage.ReleaseFiles),
					usage.Version.Name, usage.Version.Base, usage.Version.Tag)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d dependencies with a total of %d distinct versions\n",
		len(statistics.Deps()), statistics.TotalVersions())
}

// SummaryTable renders the summary as a styled terminal table.
func SummaryTable(statistics *stats.Statistics) string {
	t := output.NewTable("MODULE", "APPS", "IOCS", "VERSIONS")
	for _, dep := range statistics.DepsByReleaseFileCount() {
		versions := strconv.Itoa(len(dep.ByVersion))
		if len(dep.ByVersion) > 1 {
			versions = output.StyleFragmented.Render(versions)
		}
		t.Row(
			output.StyleNoun.Render(dep.Name),
			strconv.Itoa(len(dep.ByReleaseFile)),
			strconv.Itoa(len(dep.ByIOCName)),
			versions,
		)
	}

	footer := output.StyleSummary.Render(fmt.Sprintf(
		"%d dependencies with a total of %d distinct versions",
		len(statistics.Deps()), statistics.TotalVersions()))
	return t.String() + "\n" + footer + "\n"
}
