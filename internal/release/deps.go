package release

import (
	"strings"

	"github.com/pcdshub/epics-module-usage-summary/internal/epics"
	"github.com/pcdshub/epics-module-usage-summary/internal/output"
)

// expansionPasses bounds the iterative variable substitution. Expansion
// is a deliberately incomplete fixed point: reference chains nested more
// than this deep stay partially unresolved, which keeps pathological or
// cyclic RELEASE files from hanging the scan. Real files never nest this
// far.
const expansionPasses = 5

// infrastructureVars are RELEASE variables that name infrastructure or
// location roots rather than module dependencies. They are never
// classified.
var infrastructureVars = map[string]struct{}{
	"MY_MODULES":         {},
	"EPICS_MODULES":      {},
	"EPICS_DEV_MODULES":  {},
	"EPICS_IOC":          {},
	"VACUUMCOMMON":       {},
	"EPICS_SITE_TOP":     {},
	"TEMPLATE_TOP":       {},
	"RULES":              {},
	"CONFIG":             {},
	"BASE_SITE_TOP":      {},
	"PSPKG_ROOT":         {},
	"PACKAGE_SITE_TOP":   {},
	"MATLAB_PACKAGE_TOP": {},
	"MSI":                {},
	"ALARM_CONFIGS_TOP":  {},
}

// noiseValues are path fragments known to appear in RELEASE files
// without referring to any deployed module version.
var noiseValues = []string{
	"/epics-dev/bosum123/ek",
	"/reg/g/pcds/pyps",
	"/afs/slac/g/lcls/tools",
	"/reg/g/pcds/pkg_mgr",
	"/afs/slac/g/lcls/tools/AlarmConfigsTop",
}

// defaultDefines seeds the externally-defined variables with the current
// platform defaults when the RELEASE file (or its RELEASE_SITE) does not
// set them itself.
var defaultDefines = map[string]string{
	"BASE_MODULE_VERSION": "R7.0.2-2.?",
	"EPICS_SITE_TOP":      epics.SiteTop,
	"EPICS_BASE":          epics.SiteTop + "/base/R7.0.2-2.?",
	"EPICS_MODULES":       epics.SiteTop + "/R7.0.2-2.0/modules",
	"EPICS_MODULES_DEV":   epics.SiteTop + "/R7.0.2-2.0/modules",
}

// DepsFromContents parses RELEASE file contents, expands variable
// references against defined plus the file's own assignments, and
// classifies every absolute-path value into a module version.
//
// It returns the expanded variables and the variable-name to version
// mapping. defined is updated in place with the parsed assignments;
// platform defaults are seeded first for any name not already defined.
func DepsFromContents(
	contents string,
	defined map[string]string,
	classifier *epics.Classifier,
) (map[string]string, map[string]epics.VersionInfo) {
	for name, value := range defaultDefines {
		if _, ok := defined[name]; !ok {
			defined[name] = value
		}
	}

	variables := ParseAssignments(contents)
	for name, value := range variables {
		defined[name] = value
	}

	for pass := 0; pass < expansionPasses; pass++ {
		for name := range variables {
			expanded, err := Expand(variables[name], defined)
			if err != nil {
				// Referenced variable not known yet; retry next pass.
				continue
			}
			variables[name] = expanded
		}
	}

	versions := map[string]epics.VersionInfo{}
	for name, value := range variables {
		if !strings.HasPrefix(value, "/") {
			continue
		}
		version, classified := classifier.Classify(value)
		switch {
		case name == "EPICS_BASE":
			// The base version is tracked separately; see BaseTag.
		case isInfrastructureVar(name):
		case strings.Contains(name, "SCREENS"):
		case strings.Contains(value, "/home"):
			output.Debug("found home path", "variable", name, "value", value)
		case isNoiseValue(value):
		case strings.HasSuffix(name, "_SITE_TOP"):
		case !classified:
			output.Warn("unhandled path semantics",
				"variable", name, "value", value)
		default:
			versions[name] = version
		}
	}

	return variables, versions
}

func isInfrastructureVar(name string) bool {
	_, ok := infrastructureVars[name]
	return ok
}

func isNoiseValue(value string) bool {
	for _, ignored := range noiseValues {
		if strings.Contains(value, ignored) {
			return true
		}
	}
	return false
}
