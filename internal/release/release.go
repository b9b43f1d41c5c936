package release

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pcdshub/epics-module-usage-summary/internal/epics"
	"github.com/pcdshub/epics-module-usage-summary/internal/output"
	"github.com/pcdshub/epics-module-usage-summary/internal/pathutil"
)

// UnknownBaseTag is the sentinel base tag for RELEASE files whose base
// version could not be determined by any strategy.
const UnknownBaseTag = "unknown"

// ReleaseFile is one resolved, parsed RELEASE file. It is immutable
// after construction. Identity is by Filename (the canonical path): two
// parses of the same path represent the same file, which is why callers
// must cache ReleaseFile values by path rather than re-parsing.
type ReleaseFile struct {
	// Filename is the canonical RELEASE file path.
	Filename string

	// Variables maps every assigned variable to its expanded value.
	Variables map[string]string

	// DepToVersion maps dependency variable names to classified module
	// versions.
	DepToVersion map[string]epics.VersionInfo

	baseTag string
}

// New builds a ReleaseFile from already-parsed variables, determining
// its base tag with the given classifier.
func New(
	filename string,
	variables map[string]string,
	depToVersion map[string]epics.VersionInfo,
	classifier *epics.Classifier,
) *ReleaseFile {
	rf := &ReleaseFile{
		Filename:     filename,
		Variables:    variables,
		DepToVersion: depToVersion,
	}
	rf.baseTag = rf.resolveBaseTag(classifier)
	return rf
}

// Parse resolves and parses the RELEASE file at filename.
//
// RELEASE_SITE contents found above the file are merged in first, so
// per-application assignments override site-wide ones.
func Parse(filename string, classifier *epics.Classifier) (*ReleaseFile, error) {
	filename = pathutil.Normalize(filename)

	siteContents := ""
	sitePath, err := FindReleaseSite(filepath.Dir(filename))
	if err == nil {
		raw, err := os.ReadFile(sitePath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", sitePath, err)
		}
		siteContents = string(raw)
	} else if !errors.Is(err, ErrNoReleaseSite) {
		return nil, err
	}

	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	variables, depToVersion := DepsFromContents(
		siteContents+"\n"+string(raw), map[string]string{}, classifier)
	return New(filename, variables, depToVersion, classifier), nil
}

// BaseTag returns the base version tag for this RELEASE file.
func (rf *ReleaseFile) BaseTag() string {
	return rf.baseTag
}

// resolveBaseTag determines the base version tag. Strategies in order:
// an explicit BASE_MODULE_VERSION variable, the classified tag of
// EPICS_BASE, the base of any classified dependency, then
// UnknownBaseTag with a diagnostic.
func (rf *ReleaseFile) resolveBaseTag(classifier *epics.Classifier) string {
	if tag, ok := rf.Variables["BASE_MODULE_VERSION"]; ok {
		return tag
	}
	if base, ok := rf.Variables["EPICS_BASE"]; ok {
		if version, ok := classifier.Classify(base); ok {
			return version.Tag
		}
	}
	for _, version := range rf.DepToVersion {
		if version.Base != epics.Unknown {
			return version.Base
		}
	}
	output.Warn("unknown base version", "release_file", rf.Filename)
	return UnknownBaseTag
}
