package release

import "errors"

// Sentinel errors for the resolution outcomes. Every one of these is an
// expected, per-IOC condition: callers skip the instance and continue,
// discriminating with errors.Is.
var (
	// ErrBootPathMissing indicates the IOC's boot script directory does
	// not exist on the filesystem.
	ErrBootPathMissing = errors.New("boot path does not exist")

	// ErrBinaryPathMissing indicates no binary path was recorded for the
	// IOC, so there is no fallback after the boot path failed.
	ErrBinaryPathMissing = errors.New("no metadata for the binary path")

	// ErrBashScriptSkip indicates the IOC binary lives in the system
	// binaries directory: the "IOC" is a thin launcher script, not an
	// EPICS boot, and is expected to have no RELEASE file.
	ErrBashScriptSkip = errors.New("bash script for IOC")

	// ErrReleaseFileNotFound indicates the upward walk from both the
	// boot path and the binary path exhausted without a RELEASE file.
	ErrReleaseFileNotFound = errors.New("no release file for IOC")

	// ErrSourceMissing indicates an IOC_APPL_TOP indirection points at
	// an application top that does not exist, or that the existence
	// check itself failed (stale NFS handles included).
	ErrSourceMissing = errors.New("IOC application top missing")

	// ErrNoReleaseSite indicates no RELEASE_SITE file was found above a
	// RELEASE file. Callers proceed without site content.
	ErrNoReleaseSite = errors.New("no RELEASE_SITE file found")
)
