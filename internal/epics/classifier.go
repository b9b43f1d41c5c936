package epics

import (
	"regexp"

	"github.com/pcdshub/epics-module-usage-summary/internal/pathutil"
)

// Rule matches one filesystem layout family and captures some subset of
// the VersionInfo fields via the named groups "base", "name", and "tag".
type Rule struct {
	// Description identifies the layout family in diagnostics.
	Description string

	pattern *regexp.Regexp
}

// NewRule compiles a layout rule. The pattern must anchor at the path
// start and may use the named capture groups base, name, and tag.
func NewRule(description, pattern string) Rule {
	return Rule{
		Description: description,
		pattern:     regexp.MustCompile("^" + pattern),
	}
}

// match extracts a VersionInfo from path, reporting whether the rule
// applied.
func (r Rule) match(path string) (VersionInfo, bool) {
	m := r.pattern.FindStringSubmatch(path)
	if m == nil {
		return VersionInfo{}, false
	}
	fields := map[string]string{}
	for i, name := range r.pattern.SubexpNames() {
		if name != "" {
			fields[name] = m[i]
		}
	}
	return NewVersionInfo(fields["name"], fields["base"], fields["tag"]), true
}

// Classifier matches absolute paths against an ordered list of layout
// rules. The first matching rule wins; order matters because the more
// specific historical layouts must be tried before the generic ones, or
// a base segment would be silently dropped. The rule list is fixed at
// construction and safe for concurrent reads.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier over the given ordered rules.
func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify normalizes path and matches it against the rule list.
// It reports ok=false when no rule matches.
func (c *Classifier) Classify(path string) (VersionInfo, bool) {
	path = pathutil.Normalize(path)
	for _, rule := range c.rules {
		if version, ok := rule.match(path); ok {
			return version, true
		}
	}
	return VersionInfo{}, false
}

const (
	segBase = `(?P<base>[^/]+)/`
	segName = `(?P<name>[^/]+)/`
	segTag  = `(?P<tag>[^/]+)/?`
)

// DefaultRules returns the known PCDS and LCLS deployment layouts, most
// specific first.
func DefaultRules() []Rule {
	return []Rule{
		NewRule("pcds epics", `/cds/group/pcds/epics/`+segBase+`modules/`+segName+segTag),
		NewRule("pcds packaged epics", `/cds/group/pcds/package/epics/`+segBase+`modules/`+segName+segTag),
		NewRule("pcds flat modules", `/cds/group/pcds/epics/modules/`+segName+segTag),
		NewRule("pcds dev modules", `/cds/group/pcds/epics-dev/modules/`+segName+segTag),
		NewRule("pcds packaged module", `/cds/group/pcds/package/epics/`+segBase+`module/`+segName+segTag),
		NewRule("lcls afs", `/afs/slac/g/lcls/epics/`+segBase+`modules/`+segName+segTag),
		NewRule("lcls afs vol8", `/afs/slac.stanford.edu/g/lcls/vol8/epics/`+segBase+`modules/`+segName+segTag),
	}
}
