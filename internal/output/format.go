package output

import "strings"

// Format specifies what the summary command writes to stdout.
type Format string

const (
	// FormatHTML writes the rendered HTML summary page.
	FormatHTML Format = "html"

	// FormatText writes the plain-text summary.
	FormatText Format = "text"

	// FormatNone writes nothing to stdout; only the stderr summary is
	// produced.
	FormatNone Format = "none"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatHTML, FormatText, FormatNone:
		return true
	default:
		return false
	}
}

// ParseFormat parses a string into a Format.
// Returns FormatHTML if the string is empty or invalid.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "html", "htm":
		return FormatHTML
	case "text", "txt", "plain":
		return FormatText
	case "none", "no", "off":
		return FormatNone
	default:
		return FormatHTML
	}
}
