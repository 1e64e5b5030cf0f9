package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moonsphere-systems/moonsphere-cli/internal/libraries"
	"github.com/moonsphere-systems/moonsphere-cli/internal/process"
)

// scriptedExecutor fails the invocations listed in fail and records every call.
type scriptedExecutor struct {
	fail  map[string]error
	calls []string
}

func (s *scriptedExecutor) Run(ctx context.Context, inv process.Invocation) error {
	_, err := s.Output(ctx, inv)
	return err
}

func (s *scriptedExecutor) Output(_ context.Context, inv process.Invocation) ([]byte, error) {
	s.calls = append(s.calls, inv.String())
	if err, ok := s.fail[inv.String()]; ok {
		return nil, err
	}
	if len(inv.Args) > 0 && inv.Args[0] == "inspect" {
		return []byte("true\n"), nil
	}
	return nil, nil
}

type noRegistry struct{}

func (noRegistry) Latest(context.Context, string) (libraries.PackageInfo, error) {
	return libraries.PackageInfo{License: "MIT"}, nil
}

type harness struct {
	out  bytes.Buffer
	err  bytes.Buffer
	exec *scriptedExecutor
	root string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{exec: &scriptedExecutor{fail: map[string]error{}}, root: t.TempDir()}
	t.Setenv("MSPH_ROOT", h.root)
	return h
}

func (h *harness) run(args ...string) int {
	return Execute(context.Background(), args, &Global{
		Out:      &h.out,
		Err:      &h.err,
		Exec:     h.exec,
		Registry: noRegistry{},
		Now:      func() time.Time { return time.Date(2023, 8, 20, 12, 0, 0, 0, time.UTC) },
	})
}

func TestMigrateWebClient_Success(t *testing.T) {
	h := newHarness(t)
	code := h.run("--no-color", "migrate", "web-client", "-m", "dev")
	require.Equal(t, 0, code, h.out.String())

	out := h.out.String()
	assert.Contains(t, out, "(c) 2023 by MoonSphere Systems. On Apache 2.0 license.")
	assert.Contains(t, out, `Preparing for "dev" mode.`)
	assert.Contains(t, out, `✓ [1/4] Container "msph-web-client" is running.`)
	assert.Contains(t, out, "✓ [2/4] Successfully compiled webpack bundles.")
	assert.Contains(t, out, "✓ [4/4] Successfully migrated bundled content into docker container.")
	assert.Contains(t, out, "SUCCESS! Migrated web-client into docker container.")
	assert.Len(t, h.exec.calls, 4)
}

func TestMigrateWebClient_StageFailureStops(t *testing.T) {
	h := newHarness(t)
	h.exec.fail["yarn run docker:prod"] = &process.ExitError{Program: "yarn", Code: 1, Output: "webpack failed"}

	code := h.run("migrate", "web-client", "--mode", "prod")
	assert.Equal(t, 1, code)

	out := h.out.String()
	assert.Contains(t, out, "X [2/4] Failure compiled webpack bundles.")
	assert.Contains(t, out, "ERROR! ")
	assert.Contains(t, out, "yarn exited with status 1: webpack failed")
	assert.NotContains(t, out, "[3/4]")
	assert.NotContains(t, out, "SUCCESS!")
	assert.Len(t, h.exec.calls, 2)
}

func TestValidationFailuresRunNoStages(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing mode", []string{"migrate", "web-client"}},
		{"unknown mode", []string{"migrate", "landing-page", "-m", "staging"}},
		{"unknown service", []string{"up", "-m", "dev", "-s", "mail-parser"}},
		{"unknown build service", []string{"build", "-s", "desktop-client", "-m", "dev"}},
		{"unknown library", []string{"jib", "-s", "msph-auth", "-l", "msph-shared-lib,unknown"}},
		{"unknown command", []string{"deploy"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			assert.Equal(t, 1, h.run(tt.args...))
			assert.Empty(t, h.exec.calls)
			assert.Contains(t, h.out.String(), "ERROR! ")
			assert.NotContains(t, h.out.String(), "[1/")
		})
	}
}

func TestMissingConfigFile(t *testing.T) {
	h := newHarness(t)
	code := h.run("-c", filepath.Join(h.root, "missing.yaml"), "migrate", "s3-static")
	assert.Equal(t, 1, code)
	assert.Empty(t, h.exec.calls)
	assert.Contains(t, h.out.String(), "configuration file not found")
}

func TestVersionFlag(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 0, h.run("--version"))
	assert.Contains(t, h.out.String(), "msph ")
}

func TestMetricsFile(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(h.root, "msph.prom")
	require.Equal(t, 0, h.run("--metrics-file", path, "migrate", "content-distributor", "-m", "dev", "-r"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msph_stage_results_total")
	assert.Contains(t, string(data), `pipeline="migrate-content-distributor"`)
	assert.Len(t, h.exec.calls, 4)
}

func TestEnvCommand(t *testing.T) {
	h := newHarness(t)
	base := filepath.Join(h.root, "moonsphere-base")
	require.NoError(t, os.MkdirAll(base, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "example.env"), []byte("# comment\nKEY=value\n"), 0o600))

	require.Equal(t, 0, h.run("env"), h.out.String())
	data, err := os.ReadFile(filepath.Join(base, ".env"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "#! (c) 2023 by MoonSphere Systems."))
	assert.Contains(t, string(data), "KEY=value")

	assert.Equal(t, 1, h.run("env"))
	assert.Contains(t, h.out.String(), `X [1/3] File ".env" already exist.`)

	assert.Equal(t, 0, h.run("env", "--replace"))
	assert.Contains(t, h.out.String(), "replace")
}

func TestModulesCommand(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("modules"))
	out := h.out.String()
	assert.Contains(t, out, "msph-content-distributor")
	assert.Contains(t, out, filepath.Join(h.root, "moonsphere-web-client"))
}

func TestInitCommand(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(h.root, "msph.yaml")
	require.Equal(t, 0, h.run("init", path))
	assert.FileExists(t, path)
	assert.Equal(t, 1, h.run("init", path))
	assert.Equal(t, 0, h.run("init", "--force", path))

	require.Equal(t, 0, h.run("-c", path, "modules"))
}

func TestMigrateS3Static_VerboseHidesCredentials(t *testing.T) {
	h := newHarness(t)
	t.Setenv("MSPH_S3_USER", "admin")
	t.Setenv("MSPH_S3_PASSWORD", "s3cr3t-pass")

	require.Equal(t, 0, h.run("-v", "migrate", "s3-static"), h.out.String())
	assert.NotContains(t, h.err.String(), "s3cr3t-pass")
	assert.NotContains(t, h.out.String(), "s3cr3t-pass")
	assert.Contains(t, h.exec.calls[1], "mc alias set miniotr http://localhost:9000 *** ***")
}

func TestMigrateS3Static_EmptyCredentialsRunNoStages(t *testing.T) {
	h := newHarness(t)
	t.Setenv("MSPH_S3_USER", "")
	t.Setenv("MSPH_S3_PASSWORD", "")

	assert.Equal(t, 1, h.run("migrate", "s3-static"))
	assert.Empty(t, h.exec.calls)
	assert.Contains(t, h.out.String(), "s3 access key is empty")
}
