package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/geomlayers/internal/app"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// An HCL string with a syntax error that is guaranteed to cause a panic
	// during the loading phase inside app.NewApp().
	invalidHCL := `
		entity "Scheme" {
			references = [
		// Missing closing bracket here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	args := []string{filePath}
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, args)

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")

	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"), "The error message should indicate that a panic was recovered.")
	require.True(t, strings.Contains(errStr, "failed to parse"), "The error message should contain the underlying reason for the panic.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	err := run(out, args)

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_NoArgsPrintsUsage(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, nil)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "MANIFEST_PATH")
}

func TestRun_ValidationFailureIsAnError(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	violating := `
entity "DivisorGroup" {
  references = ["ToricDivisor"]
}
`
	require.NoError(t, os.WriteFile(filePath, []byte(violating), 0600))

	out := &bytes.Buffer{}
	err := run(out, []string{"-log-level", "error", filePath})

	require.Error(t, err)
	var failErr *app.ValidationFailedError
	require.ErrorAs(t, err, &failErr)
	assert.Contains(t, out.String(), "layer-order")
}

func TestRun_MissingManifestPathFails(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{filepath.Join(t.TempDir(), "no-such-dir")})

	require.Error(t, err, "a typoed manifest path must not exit cleanly")
	assert.Contains(t, err.Error(), "no .hcl manifest files found")
}

func TestRun_Layers(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-layers"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Point, Scheme")
	assert.Contains(t, out.String(), "ToricDivisor")
}
