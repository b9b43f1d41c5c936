// Package stats folds resolved RELEASE files into per-dependency,
// per-version usage statistics.
package stats

import (
	"sort"

	"github.com/pcdshub/epics-module-usage-summary/internal/epics"
	"github.com/pcdshub/epics-module-usage-summary/internal/release"
)

// StringSet is a set of strings.
type StringSet map[string]struct{}

// Add inserts s into the set.
func (set StringSet) Add(s string) {
	set[s] = struct{}{}
}

// Contains reports membership.
func (set StringSet) Contains(s string) bool {
	_, ok := set[s]
	return ok
}

// ReleaseFileSet is a set of RELEASE files keyed by canonical filename,
// matching ReleaseFile identity semantics.
type ReleaseFileSet map[string]*release.ReleaseFile

// Add inserts rf into the set.
func (set ReleaseFileSet) Add(rf *release.ReleaseFile) {
	set[rf.Filename] = rf
}

// Dependency accumulates usage of one module across the whole scan. It
// grows monotonically as RELEASE files are folded in.
type Dependency struct {
	// Name is the module name.
	Name string

	// Variables holds every RELEASE variable name that referenced this
	// module.
	Variables StringSet

	// ByIOCName holds every IOC that uses this module.
	ByIOCName StringSet

	// ByReleaseFile holds every distinct RELEASE file that declares this
	// module.
	ByReleaseFile ReleaseFileSet

	// ByVersion maps each in-use version to the RELEASE files using it.
	ByVersion map[epics.VersionInfo]ReleaseFileSet
}

func newDependency(name string) *Dependency {
	return &Dependency{
		Name:          name,
		Variables:     StringSet{},
		ByIOCName:     StringSet{},
		ByReleaseFile: ReleaseFileSet{},
		ByVersion:     map[epics.VersionInfo]ReleaseFileSet{},
	}
}

// VersionUsage pairs one version of a dependency with the RELEASE files
// using it.
type VersionUsage struct {
	Version      epics.VersionInfo
	ReleaseFiles ReleaseFileSet
}

// VersionsByCount returns the dependency's versions ordered by
// descending distinct-release-file count, ties broken by ascending
// version tag. The order is deterministic across runs.
func (d *Dependency) VersionsByCount() []VersionUsage {
	usages := make([]VersionUsage, 0, len(d.ByVersion))
	for version, files := range d.ByVersion {
		usages = append(usages, VersionUsage{Version: version, ReleaseFiles: files})
	}
	sort.SliceStable(usages, func(i, j int) bool {
		if len(usages[i].ReleaseFiles) != len(usages[j].ReleaseFiles) {
			return len(usages[i].ReleaseFiles) > len(usages[j].ReleaseFiles)
		}
		return usages[i].Version.Tag < usages[j].Version.Tag
	})
	return usages
}

// Statistics is the top-level accumulator for one scan. One instance is
// built per run by folding each (RELEASE file, IOC name) pair exactly
// once via Add; the fold is commutative, so instance order does not
// affect the result.
type Statistics struct {
	// AppsByBaseVersion maps each base tag to the RELEASE files built
	// against it.
	AppsByBaseVersion map[string]ReleaseFileSet

	// IOCsByBaseVersion maps each base tag to the IOC names running
	// against it.
	IOCsByBaseVersion map[string]StringSet

	deps     map[string]*Dependency
	depOrder []string
}

// New creates an empty Statistics accumulator.
func New() *Statistics {
	return &Statistics{
		AppsByBaseVersion: map[string]ReleaseFileSet{},
		IOCsByBaseVersion: map[string]StringSet{},
		deps:              map[string]*Dependency{},
	}
}

// Add folds one RELEASE file, resolved for the named IOC, into the
// statistics. All updates are set unions, so folding the same pair
// again is a no-op.
func (s *Statistics) Add(rf *release.ReleaseFile, iocName string) {
	baseTag := rf.BaseTag()
	if _, ok := s.AppsByBaseVersion[baseTag]; !ok {
		s.AppsByBaseVersion[baseTag] = ReleaseFileSet{}
	}
	s.AppsByBaseVersion[baseTag].Add(rf)
	if _, ok := s.IOCsByBaseVersion[baseTag]; !ok {
		s.IOCsByBaseVersion[baseTag] = StringSet{}
	}
	s.IOCsByBaseVersion[baseTag].Add(iocName)

	for variable, version := range rf.DepToVersion {
		dep := s.dep(version.Name)
		dep.Variables.Add(variable)
		dep.ByIOCName.Add(iocName)
		dep.ByReleaseFile.Add(rf)
		if _, ok := dep.ByVersion[version]; !ok {
			dep.ByVersion[version] = ReleaseFileSet{}
		}
		dep.ByVersion[version].Add(rf)
	}
}

// dep returns the accumulator for the named module, inserting an empty
// one on first use. Insertion order is recorded for stable reporting.
func (s *Statistics) dep(name string) *Dependency {
	if existing, ok := s.deps[name]; ok {
		return existing
	}
	created := newDependency(name)
	s.deps[name] = created
	s.depOrder = append(s.depOrder, name)
	return created
}

// Dep returns the accumulator for the named module, or nil if the scan
// never saw it.
func (s *Statistics) Dep(name string) *Dependency {
	return s.deps[name]
}

// Deps returns all dependency accumulators in first-seen order.
func (s *Statistics) Deps() []*Dependency {
	deps := make([]*Dependency, 0, len(s.depOrder))
	for _, name := range s.depOrder {
		deps = append(deps, s.deps[name])
	}
	return deps
}

// DepsByReleaseFileCount returns all dependencies ordered by descending
// distinct-release-file count. Equal counts keep first-seen order; no
// secondary key is applied at the dependency level.
func (s *Statistics) DepsByReleaseFileCount() []*Dependency {
	deps := s.Deps()
	sort.SliceStable(deps, func(i, j int) bool {
		return len(deps[i].ByReleaseFile) > len(deps[j].ByReleaseFile)
	})
	return deps
}

// NumIOCs returns the number of distinct IOCs tracked across all
// dependencies.
func (s *Statistics) NumIOCs() int {
	iocs := StringSet{}
	for _, dep := range s.deps {
		for name := range dep.ByIOCName {
			iocs.Add(name)
		}
	}
	return len(iocs)
}

// NumReleaseFiles returns the number of distinct RELEASE files tracked
// across all dependencies.
func (s *Statistics) NumReleaseFiles() int {
	files := StringSet{}
	for _, dep := range s.deps {
		for filename := range dep.ByReleaseFile {
			files.Add(filename)
		}
	}
	return len(files)
}

// TotalVersions returns the total number of distinct in-use versions
// summed over all dependencies.
func (s *Statistics) TotalVersions() int {
	total := 0
	for _, dep := range s.deps {
		total += len(dep.ByVersion)
	}
	return total
}
