// Package epics models EPICS module version information and classifies
// deployment paths into named module versions.
package epics

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Unknown marks a version field that a layout rule did not capture.
const Unknown = "?"

// SiteTop is the root of the current PCDS EPICS deployment tree.
const SiteTop = "/cds/group/pcds/epics"

// BaseModuleName is the synthetic module name used for the EPICS base
// platform itself.
const BaseModuleName = "epics-base"

// VersionInfo identifies one version of one module built against one
// base platform. The zero value is not useful; use NewVersionInfo so
// uncaptured fields default to Unknown. VersionInfo is comparable and is
// used as a map key throughout the statistics.
type VersionInfo struct {
	// Name is the module name, e.g. "asyn".
	Name string

	// Base is the EPICS base version the module was built against.
	Base string

	// Tag is the module version tag, e.g. "R4.39-1.0.1".
	Tag string
}

// NewVersionInfo creates a VersionInfo, substituting Unknown for any
// empty field.
func NewVersionInfo(name, base, tag string) VersionInfo {
	if name == "" {
		name = Unknown
	}
	if base == "" {
		base = Unknown
	}
	if tag == "" {
		tag = Unknown
	}
	return VersionInfo{Name: name, Base: base, Tag: tag}
}

// Path returns the canonical deployment path for this version.
func (v VersionInfo) Path() string {
	if v.Name == BaseModuleName {
		return filepath.Join(SiteTop, "base", v.Tag)
	}
	return filepath.Join(SiteTop, v.Tag, "modules")
}

// URL returns the module release page for this version.
func (v VersionInfo) URL() string {
	return fmt.Sprintf("https://github.com/slac-epics/%s/releases/tag/%s", v.Name, v.Tag)
}

// BaseURL returns the epics-base page for this version's base platform.
// A SLAC base tag with fewer than two dots in its suffix names a branch
// rather than a release; branch tags link to the branch tree instead of
// a release tag.
func (v VersionInfo) BaseURL() string {
	if _, suffix, found := strings.Cut(v.Base, "-"); found {
		if strings.Count(suffix, ".") < 2 {
			branch := strings.TrimRight(v.Base, "0.")
			return fmt.Sprintf("https://github.com/slac-epics/epics-base/tree/%s.branch", branch)
		}
	}
	return fmt.Sprintf("https://github.com/slac-epics/epics-base/releases/tag/%s", v.Base)
}

// String returns a compact human-readable form.
func (v VersionInfo) String() string {
	return fmt.Sprintf("%s %s %s", v.Name, v.Base, v.Tag)
}
