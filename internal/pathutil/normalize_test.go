package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeIdempotent(t *testing.T) {
	paths := []string{
		"/cds/group/pcds/epics/R7.0.2/modules/asyn/R4.39",
		"/reg/g/pcds/epics/modules/ioc/R1.0",
		"/some/other/path",
		"/tmp",
		"relative/path",
	}
	for _, path := range paths {
		once := Normalize(path)
		assert.Equal(t, once, Normalize(once), "normalize(%q) is not a fixed point", path)
	}
}

func TestNormalizeLegacyGroupPrefix(t *testing.T) {
	assert.Equal(t,
		"/cds/group/pcds/epics/R7.0.2/modules/asyn/R4.39",
		Normalize("/reg/g/pcds/epics/R7.0.2/modules/asyn/R4.39"))
}

func TestNormalizeLegacyPrefixExact(t *testing.T) {
	assert.Equal(t, "/cds/group/pcds", Normalize("/reg/g/pcds"))
}

func TestNormalizeLeavesCurrentPaths(t *testing.T) {
	assert.Equal(t,
		"/cds/group/pcds/package/epics/base/R7.0.2",
		Normalize("/cds/group/pcds/package/epics/base/R7.0.2"))
}

func TestNormalizeDoesNotRewriteSimilarPrefixes(t *testing.T) {
	// Prefix rewriting is per-component, not substring-based.
	assert.Equal(t, "/reg/g/pcdsFoo/bar", Normalize("/reg/g/pcdsFoo/bar"))
}

func TestNormalizeResolvesSymlinks(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "target")
	require.NoError(t, os.MkdirAll(target, 0o755))
	link := filepath.Join(tmpDir, "link")
	require.NoError(t, os.Symlink(target, link))

	assert.Equal(t, Normalize(target), Normalize(link))

	// Nonexistent suffix components are kept on top of the resolved part.
	assert.Equal(t,
		filepath.Join(Normalize(target), "sub", "dir"),
		Normalize(filepath.Join(link, "sub", "dir")))
}

func TestNormalizeExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, Normalize(home), Normalize("~"))
	assert.Equal(t, Normalize(filepath.Join(home, "iocs")), Normalize("~/iocs"))
}

func TestNormalizeUnknownUserHome(t *testing.T) {
	// An unknown ~user cannot be expanded; normalization must still
	// terminate and be idempotent.
	result := Normalize("~no-such-user-xyz/ioc")
	assert.Equal(t, result, Normalize(result))
}
