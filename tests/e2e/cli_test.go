// Package e2e provides end-to-end tests for the epics-usage CLI.
package e2e

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcdshub/epics-module-usage-summary/internal/ioc"
	"github.com/pcdshub/epics-module-usage-summary/internal/testutil"
)

var usageBinary string

func TestMain(m *testing.M) {
	// Build the binary once for all tests
	tmpDir, err := os.MkdirTemp("", "epics-usage-e2e-*")
	if err != nil {
		panic("failed to create temp dir: " + err.Error())
	}

	usageBinary = filepath.Join(tmpDir, "epics-usage")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	cmd := exec.CommandContext(ctx, "go", "build", "-o", usageBinary, "../../cmd/epics-usage")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		cancel()
		os.RemoveAll(tmpDir)
		panic("failed to build epics-usage binary: " + err.Error())
	}
	cancel()

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

// runUsage runs the epics-usage binary with the given arguments.
func runUsage(t *testing.T, workDir string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, usageBinary, args...)
	cmd.Dir = workDir

	stdoutBytes, err := cmd.Output()
	var stderrBytes []byte
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderrBytes = exitErr.Stderr
	}

	return string(stdoutBytes), string(stderrBytes), err
}

func TestE2E_Version(t *testing.T) {
	stdout, stderr, err := runUsage(t, t.TempDir(), "version")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "epics-usage:")
	assert.Contains(t, stdout, "Version:")
}

func TestE2E_ConfigInitAndVet(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	_, stderr, err := runUsage(t, tmpDir, "--config", configFile, "config", "init")
	require.NoError(t, err, "stderr: %s", stderr)
	require.FileExists(t, configFile)

	// Init refuses to clobber without --force.
	_, _, err = runUsage(t, tmpDir, "--config", configFile, "config", "init")
	require.Error(t, err)

	_, stderr, err = runUsage(t, tmpDir, "--config", configFile, "config", "vet")
	require.NoError(t, err, "stderr: %s", stderr)
}

func TestE2E_SummaryText(t *testing.T) {
	tmpDir := t.TempDir()

	bootDir := testutil.WriteIOCTree(t, tmpDir, "vacuum-01", ""+
		"MOTOR = /cds/group/pcds/epics/R7.0.2-2.0/modules/motor/R1.10.0\n"+
		"ASYN = /cds/group/pcds/epics/R7.0.2-2.0/modules/asyn/R4.39-1.0.1\n")

	iocsFile := testutil.WriteJSON(t, tmpDir, "iocs.json", []ioc.Metadata{
		{Name: "vacuum-01", Script: filepath.Join(bootDir, "st.cmd")},
	})

	stdout, stderr, err := runUsage(t, tmpDir,
		"summary", "--iocs", iocsFile, "--format", "text")
	require.NoError(t, err, "stderr: %s", stderr)

	assert.Contains(t, stdout, "motor is used by 1 release files (applications) and 1 IOCs")
	assert.Contains(t, stdout, "asyn is used by 1 release files (applications) and 1 IOCs")
}

func TestE2E_SummaryHTMLToFile(t *testing.T) {
	tmpDir := t.TempDir()

	bootDir := testutil.WriteIOCTree(t, tmpDir, "laser-02", ""+
		"MOTOR = /cds/group/pcds/epics/R7.0.2-2.0/modules/motor/R1.10.0\n")

	iocsFile := testutil.WriteJSON(t, tmpDir, "iocs.json", []ioc.Metadata{
		{Name: "laser-02", Script: filepath.Join(bootDir, "st.cmd")},
	})

	outFile := filepath.Join(tmpDir, "summary.html")
	stdout, stderr, err := runUsage(t, tmpDir,
		"summary", "--iocs", iocsFile, "--output", outFile)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Empty(t, stdout)

	contents, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "<html")
	assert.Contains(t, string(contents), "motor")
}

func TestE2E_SummaryMissingFeed(t *testing.T) {
	tmpDir := t.TempDir()

	_, stderr, err := runUsage(t, tmpDir,
		"summary", "--iocs", filepath.Join(tmpDir, "nope.json"))
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 5, exitErr.ExitCode(), "stderr: %s", stderr)
}

func TestE2E_SummaryBadFormat(t *testing.T) {
	tmpDir := t.TempDir()

	_, _, err := runUsage(t, tmpDir, "summary", "--format", "pdf")
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode())
}