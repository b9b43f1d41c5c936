package release

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pcdshub/epics-module-usage-summary/internal/ioc"
	"github.com/pcdshub/epics-module-usage-summary/internal/pathutil"
)

// systemBinDir is where thin launcher scripts (bash wrappers around
// non-EPICS processes) report their binary. Seeing it means the IOC has
// no RELEASE file to find.
const systemBinDir = "/usr/bin"

// applTopPattern extracts the application top directory from an
// IOC_APPL_TOP indirection file. Only the first matching line counts.
var applTopPattern = regexp.MustCompile(`IOC_APPL_TOP\s*=\s*(.*)`)

// errNoReleaseFromPath reports that one upward walk exhausted without a
// RELEASE file. It is internal to resolution: FromIOC converts it into
// the appropriate public outcome after trying the fallback path.
var errNoReleaseFromPath = errors.New("unable to find RELEASE file")

// FindReleaseSite walks upward from dir looking for a RELEASE_SITE
// file. It returns ErrNoReleaseSite when the walk exhausts; callers
// proceed without site-wide settings.
func FindReleaseSite(dir string) (string, error) {
	path, err := filepath.Abs(dir)
	if err != nil {
		path = filepath.Clean(dir)
	}
	for pathDepth(path) > 2 {
		sitePath := filepath.Join(path, "RELEASE_SITE")
		if fileExists(sitePath) {
			return sitePath, nil
		}
		path = filepath.Dir(path)
	}
	return "", fmt.Errorf("%w for path %s", ErrNoReleaseSite, dir)
}

// FindReleaseFileFromBootPath walks upward from bootPath. At each level
// a configure/RELEASE file wins; failing that, an IOC_APPL_TOP
// indirection file is followed to its declared application top.
func FindReleaseFileFromBootPath(bootPath string) (string, error) {
	path := pathutil.Normalize(bootPath)
	for pathDepth(path) > 2 {
		releasePath := filepath.Join(path, "configure", "RELEASE")
		if fileExists(releasePath) {
			return releasePath, nil
		}
		applTopFile := filepath.Join(path, "IOC_APPL_TOP")
		if fileExists(applTopFile) {
			return releaseFileFromApplTop(applTopFile)
		}
		path = filepath.Dir(path)
	}
	return "", fmt.Errorf("%w for boot path %s", errNoReleaseFromPath, bootPath)
}

// releaseFileFromApplTop reads an IOC_APPL_TOP indirection file and
// returns the configure/RELEASE path under the declared application top.
//
// The top is normalized before the existence check to avoid stale NFS
// handles on the deprecated mounts; a filesystem error during that check
// is reported as missing source, not propagated raw.
func releaseFileFromApplTop(applTopFile string) (string, error) {
	contents, err := os.ReadFile(pathutil.Normalize(applTopFile))
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %w", ErrSourceMissing, applTopFile, err)
	}

	var applTop string
	for _, line := range strings.Split(string(contents), "\n") {
		if m := applTopPattern.FindStringSubmatch(line); m != nil {
			applTop = strings.TrimSpace(m[1])
			break
		}
	}
	if applTop == "" {
		return "", fmt.Errorf("%w: IOC application top not declared in %s",
			errNoReleaseFromPath, applTopFile)
	}

	applTop = pathutil.Normalize(applTop)
	if _, err := os.Stat(applTop); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrSourceMissing, applTop, err)
	}
	return filepath.Join(applTop, "configure", "RELEASE"), nil
}

// FromIOC resolves the RELEASE file path for one IOC. The boot script
// directory is the primary path; the binary directory is the fallback.
// Every failure is one of the package sentinel outcomes.
func FromIOC(info ioc.Metadata) (string, error) {
	bootPath := pathutil.Normalize(filepath.Dir(info.Script))
	if !fileExists(bootPath) {
		return "", fmt.Errorf("%w; skipping: %s", ErrBootPathMissing, bootPath)
	}

	releaseFile, err := FindReleaseFileFromBootPath(bootPath)
	if errors.Is(err, errNoReleaseFromPath) {
		if info.Binary == "" {
			return "", fmt.Errorf("%w for %s", ErrBinaryPathMissing, info.Name)
		}
		binaryPath := filepath.Dir(info.Binary)
		if binaryPath == systemBinDir {
			return "", fmt.Errorf("%w; skipping: %s", ErrBashScriptSkip, bootPath)
		}
		releaseFile, err = FindReleaseFileFromBootPath(binaryPath)
		if errors.Is(err, errNoReleaseFromPath) {
			return "", fmt.Errorf("%w: %s and %s", ErrReleaseFileNotFound, bootPath, binaryPath)
		}
	}
	if err != nil {
		return "", err
	}
	return pathutil.Normalize(releaseFile), nil
}

// pathDepth counts path components, including the root.
func pathDepth(path string) int {
	path = filepath.Clean(path)
	if path == "/" {
		return 1
	}
	return 1 + strings.Count(path, "/")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
