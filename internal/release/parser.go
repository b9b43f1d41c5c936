// Package release locates, parses, and resolves EPICS RELEASE files.
//
// A RELEASE file is line-oriented Makefile-style text: each significant
// line assigns a value to a variable, values may reference other
// variables with $(NAME) syntax, and some values are computed by the
// shell at build time. This package implements only enough of that
// grammar to resolve module paths; it never evaluates shell values and
// never performs conditional or rule logic.
package release

import (
	"errors"
	"regexp"
	"strings"
)

// shellMarker prefixes values computed by invoking the shell at build
// time. Those values are opaque: they are carried through unexpanded and
// never classified.
const shellMarker = "$(shell "

// errUndefinedReference is returned by Expand when a value references a
// variable that is not (yet) known. The caller leaves the value
// untouched and retries on the next expansion pass.
var errUndefinedReference = errors.New("undefined variable reference")

// referencePattern matches a rewritten ${NAME} variable reference.
var referencePattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ParseAssignments extracts all NAME = VALUE assignments from RELEASE
// file contents. Comment lines, lines without an assignment, and
// shell-computed values are skipped. The conditional-assignment forms
// ?= and := are treated the same as plain =.
func ParseAssignments(contents string) map[string]string {
	variables := map[string]string{}
	for _, line := range strings.Split(contents, "\n") {
		line = strings.TrimRight(line, " \t\r")
		trimmed := strings.TrimLeft(line, " \t")
		if !strings.Contains(line, "=") ||
			strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "$") {
			continue
		}
		name, value, _ := strings.Cut(line, "=")
		name = strings.TrimSpace(strings.TrimRight(name, " ?:\t"))
		value = strings.TrimSpace(value)
		if strings.HasPrefix(value, shellMarker) {
			continue
		}
		variables[name] = value
	}
	return variables
}

// Expand rewrites $(NAME) references in value to ${NAME} template form
// and substitutes each reference from vars.
//
// A value containing a shell marker is returned in rewritten form
// without substitution. A reference to an undefined name returns
// errUndefinedReference; the caller retries the whole value on a later
// pass once the referenced variable may have become known.
func Expand(value string, vars map[string]string) (string, error) {
	value = strings.ReplaceAll(value, "$(", "${")
	value = strings.ReplaceAll(value, ")", "}")
	if strings.Contains(value, "${shell") {
		return value, nil
	}

	var missing error
	expanded := referencePattern.ReplaceAllStringFunc(value, func(ref string) string {
		name := ref[2 : len(ref)-1]
		resolved, ok := vars[name]
		if !ok {
			missing = errUndefinedReference
			return ref
		}
		return resolved
	})
	if missing != nil {
		return "", missing
	}
	return expanded, nil
}
