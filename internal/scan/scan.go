// Package scan drives the dependency-resolution pipeline over a set of
// IOCs and folds the results into usage statistics.
package scan

import (
	"errors"
	"runtime/debug"

	"github.com/pcdshub/epics-module-usage-summary/internal/epics"
	"github.com/pcdshub/epics-module-usage-summary/internal/ioc"
	"github.com/pcdshub/epics-module-usage-summary/internal/output"
	"github.com/pcdshub/epics-module-usage-summary/internal/release"
	"github.com/pcdshub/epics-module-usage-summary/internal/stats"
)

// Scanner resolves RELEASE files for IOCs and accumulates statistics.
// RELEASE file parsing is deduplicated by canonical path: when many IOCs
// share one application, the file is parsed once and folded once per
// IOC.
type Scanner struct {
	classifier   *epics.Classifier
	releaseFiles map[string]*release.ReleaseFile
}

// New creates a Scanner using the given classifier.
func New(classifier *epics.Classifier) *Scanner {
	return &Scanner{
		classifier:   classifier,
		releaseFiles: map[string]*release.ReleaseFile{},
	}
}

// Run processes every IOC and returns the accumulated statistics.
//
// No single IOC can abort the run: every resolution outcome and parse
// failure is logged and the instance skipped. The fold itself is a
// synchronous single-writer loop.
func (s *Scanner) Run(iocs []ioc.Metadata) *stats.Statistics {
	statistics := stats.New()
	for _, info := range iocs {
		s.processIOC(statistics, info)
	}
	return statistics
}

func (s *Scanner) processIOC(statistics *stats.Statistics, info ioc.Metadata) {
	defer func() {
		if r := recover(); r != nil {
			output.Error("unexpected failure during statistics gathering",
				"ioc", info.Name, "panic", r, "stack", string(debug.Stack()))
		}
	}()

	path, err := release.FromIOC(info)
	if err != nil {
		logResolutionOutcome(info, err)
		return
	}

	releaseFile, ok := s.releaseFiles[path]
	if !ok {
		releaseFile, err = release.Parse(path, s.classifier)
		if err != nil {
			output.Error("release file parse failure",
				"ioc", info.Name, "path", path, "error", err)
			return
		}
		s.releaseFiles[path] = releaseFile
	}

	statistics.Add(releaseFile, info.Name)
}

// logResolutionOutcome reports one skipped IOC. Thin launcher scripts
// are an expected part of the fleet and only show up at debug level.
func logResolutionOutcome(info ioc.Metadata, err error) {
	switch {
	case errors.Is(err, release.ErrBashScriptSkip):
		output.Debug("skipping IOC", "ioc", info.Name, "reason", err)
	case errors.Is(err, release.ErrBootPathMissing),
		errors.Is(err, release.ErrBinaryPathMissing),
		errors.Is(err, release.ErrReleaseFileNotFound),
		errors.Is(err, release.ErrSourceMissing):
		output.Warn("skipping IOC", "ioc", info.Name, "reason", err)
	default:
		output.Error("unexpected resolution failure", "ioc", info.Name, "error", err)
	}
}
