package report

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/pcdshub/epics-module-usage-summary/internal/stats"
)

//go:embed templates/summary.tpl.html
var templateFS embed.FS

// defaultTemplate is the embedded summary page template path.
const defaultTemplate = "templates/summary.tpl.html"

// TemplateData is the template-variable contract for the HTML summary
// renderer.
type TemplateData struct {
	// Stats is the full statistics accumulator.
	Stats *stats.Statistics

	// DepsByReleaseFileCount lists dependencies by descending usage.
	DepsByReleaseFileCount []*stats.Dependency

	// DepVersions maps each dependency name to its sorted version usage.
	DepVersions map[string][]stats.VersionUsage

	// TotalVersions is the distinct version count over all dependencies.
	TotalVersions int
}

// NewTemplateData derives the template data views from statistics.
func NewTemplateData(statistics *stats.Statistics) TemplateData {
	depVersions := map[string][]stats.VersionUsage{}
	for _, dep := range statistics.Deps() {
		depVersions[dep.Name] = dep.VersionsByCount()
	}
	return TemplateData{
		Stats:                  statistics,
		DepsByReleaseFileCount: statistics.DepsByReleaseFileCount(),
		DepVersions:            depVersions,
		TotalVersions:          statistics.TotalVersions(),
	}
}

// RenderHTML renders the statistics through the template at
// templateFile, or through the embedded default template when
// templateFile is empty.
func RenderHTML(statistics *stats.Statistics, templateFile string) (string, error) {
	var (
		contents []byte
		err      error
		name     = defaultTemplate
	)
	if templateFile != "" {
		name = templateFile
		contents, err = os.ReadFile(templateFile)
	} else {
		contents, err = templateFS.ReadFile(defaultTemplate)
	}
	if err != nil {
		return "", fmt.Errorf("reading summary template: %w", err)
	}

	tpl, err := template.New(name).Parse(string(contents))
	if err != nil {
		return "", fmt.Errorf("parsing summary template %s: %w", name, err)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, NewTemplateData(statistics)); err != nil {
		return "", fmt.Errorf("rendering summary template %s: %w", name, err)
	}
	return buf.String(), nil
}
