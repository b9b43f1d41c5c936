package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette — named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: module names, version tags.
	ColorCyan = lipgloss.Color("14")

	// ColorYellow is used for fragmented usage (more than one version in use).
	ColorYellow = lipgloss.Color("220")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles — map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (module names, base versions, tags).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleFragmented styles version counts when usage is split across versions.
	StyleFragmented = lipgloss.NewStyle().Foreground(ColorYellow)

	// StyleDim styles structural chrome (separators, per-version detail lines).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)
