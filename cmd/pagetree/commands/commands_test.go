package commands

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/pagetree/internal/errors"
	"git.home.luguber.info/inful/pagetree/internal/site"
)

// runCLI parses args like the real binary and runs the selected command.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagetree"),
		kong.Vars{"version": "test"},
		kong.Bind(cli),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)

	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err = kctx.Run(&Global{Logger: logger, Out: &out})
	return out.String(), err
}

func initProject(t *testing.T) string {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "pagetree.yaml")
	out, err := runCLI(t, "--config", cfg, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Writing configuration to "+cfg)
	assert.Contains(t, out, "getting-started-fr.md")
	return cfg
}

func TestInit_RefusesOverwrite(t *testing.T) {
	cfg := initProject(t)

	_, err := runCLI(t, "--config", cfg, "init")
	require.Error(t, err)

	out, err := runCLI(t, "--config", cfg, "init", "--force")
	require.NoError(t, err)
	assert.NotContains(t, out, "Created", "existing content is kept")
}

func TestBuild(t *testing.T) {
	cfg := initProject(t)
	dir := filepath.Dir(cfg)

	out, err := runCLI(t, "--config", cfg, "build")
	require.NoError(t, err)
	assert.Contains(t, out, "Built 4 pages (4 files)")

	for _, rel := range []string{
		"docs/index.html",
		"docs/getting-started/index.html",
		"fr/docs/getting-started/index.html",
		"about/index.html",
	} {
		assert.FileExists(t, filepath.Join(dir, "output", filepath.FromSlash(rel)))
	}

	data, err := os.ReadFile(filepath.Join(dir, "output", site.ReportFile))
	require.NoError(t, err)
	var report site.Report
	require.NoError(t, yaml.Unmarshal(data, &report))
	parents := map[string]string{}
	for _, e := range report.Pages {
		parents[e.URL] = e.Parent
	}
	assert.Equal(t, "docs/", parents["docs/getting-started/"])
	assert.Equal(t, "docs/", parents["fr/docs/getting-started/"])
	assert.Empty(t, parents["about/"])
}

func TestBuild_OutputOverrideAndMetrics(t *testing.T) {
	cfg := initProject(t)
	output := filepath.Join(t.TempDir(), "public")
	metricsFile := filepath.Join(t.TempDir(), "pagetree.prom")

	_, err := runCLI(t, "--config", cfg, "build", "-o", output, "--metrics-file", metricsFile)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(output, "docs", "index.html"))

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pagetree_pages_written_total 4")
	assert.Contains(t, string(data), `pagetree_parent_resolutions_total{resolution="sibling"} 1`)
	assert.Contains(t, string(data), `pagetree_build_outcomes_total{outcome="success"} 1`)
}

func TestBuild_MissingConfig(t *testing.T) {
	_, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "build")
	require.Error(t, err)
	assert.Equal(t, 7, derrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestTree(t *testing.T) {
	cfg := initProject(t)

	out, err := runCLI(t, "--config", cfg, "tree")
	require.NoError(t, err)
	assert.Equal(t, "About (en) about/\n"+
		"Documentation (en) docs/\n"+
		"  Getting Started (en) docs/getting-started/\n"+
		"Premiers pas (fr) fr/docs/getting-started/ -> docs/\n", out)
	assert.NoDirExists(t, filepath.Join(filepath.Dir(cfg), "output"))
}

func TestParseLogLevel(t *testing.T) {
	t.Setenv(LogLevelEnv, "warn")
	assert.Equal(t, slog.LevelWarn, parseLogLevel(false))
	assert.Equal(t, slog.LevelDebug, parseLogLevel(true))

	t.Setenv(LogLevelEnv, "bogus")
	assert.Equal(t, slog.LevelInfo, parseLogLevel(false))
}
