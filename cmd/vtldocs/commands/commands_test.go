package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"github.com/sdmx-twg/vtldocs/internal/config"
	helpers "github.com/sdmx-twg/vtldocs/internal/testutil/testutils"
	"github.com/sdmx-twg/vtldocs/internal/versioning"
)

const unionDir = "reference_manual/operators/general_purpose/union"

type testEnv struct {
	cli    *CLI
	global *Global
	out    *bytes.Buffer
	docs   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvAt(t, t.TempDir())
}

func newTestEnvAt(t *testing.T, docs string) *testEnv {
	t.Helper()
	for _, k := range []string{
		config.EnvRepositoryOwner, config.EnvRepository,
		config.EnvPlantUMLPath, config.EnvMultiversionBuild,
	} {
		t.Setenv(k, "")
	}
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	helpers.WriteTree(t, docs, map[string]string{
		"templates/examples":            "{{ .op_type }}/{{ .operator }}{{ range .inputs }} {{ .Name }}{{ end }}\n",
		unionDir + "/examples/ds_1.csv": "Id_1\n",
		"vtldocs.yaml":                  "github:\n  user: sdmx-twg\n  repo: vtl\n",
	})

	out := &bytes.Buffer{}
	global := NewGlobal("")
	global.Out = out
	return &testEnv{cli: &CLI{DocsDir: docs}, global: global, out: out, docs: docs}
}

func TestCLIModel(t *testing.T) {
	parser, err := kong.New(&CLI{}, kong.Vars{"version": "test"})
	require.NoError(t, err)

	_, err = parser.Parse([]string{"settings", "--format", "json", "--docs-dir", "docs"})
	require.NoError(t, err)

	_, err = parser.Parse([]string{"settings", "--format", "ini"})
	require.Error(t, err)
}

func TestGenerateCmd(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, (&GenerateCmd{}).Run(context.Background(), env.global, env.cli))
	require.Equal(t, "Example pages: 1 written, 0 unchanged, 0 skipped\n", env.out.String())
	helpers.NewFileAssertions(t, env.docs).
		AssertFileContains(unionDir+"/examples.rst", "general_purpose/union ds_1")
}

func TestBuildCmd(t *testing.T) {
	env := newTestEnv(t)
	settings := filepath.Join(env.docs, "_build", "settings.json")

	require.NoError(t, (&BuildCmd{Settings: settings}).Run(context.Background(), env.global, env.cli))

	fa := helpers.NewFileAssertions(t, env.docs)
	fa.AssertFileExists(unionDir + "/examples.rst")
	fa.AssertFileContains("_static/version-selector.js", `"label":"Latest (v2.2)"`)
	fa.AssertFileContains("_build/settings.json", `"github_user": "sdmx-twg"`)
}

func TestBuildCmdSkipsGenerationInMultiversionBuild(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv(config.EnvMultiversionBuild, "1")

	require.NoError(t, (&BuildCmd{}).Run(context.Background(), env.global, env.cli))

	fa := helpers.NewFileAssertions(t, env.docs)
	fa.AssertFileAbsent(unionDir + "/examples.rst")
	fa.AssertFileExists("_static/version-selector.js")
	require.NotContains(t, env.out.String(), "Example pages")
}

func TestVersionCmdFallsBackToDefault(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, (&VersionCmd{}).Run(context.Background(), env.global, env.cli))
	require.Equal(t, "2.2\n", env.out.String())
}

func TestVersionCmdReadsBranch(t *testing.T) {
	repo, wt, dir := helpers.SetupTestGitRepo(t)
	env := newTestEnvAt(t, dir)
	hash := helpers.Commit(t, wt, env.docs, "index.rst", "VTL")
	helpers.PointHead(t, repo, "v2.1-fixes", hash)

	require.NoError(t, (&VersionCmd{}).Run(context.Background(), env.global, env.cli))
	require.Equal(t, "2.1\n", env.out.String())
}

func TestSettingsCmd(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, (&SettingsCmd{Format: "json"}).Run(context.Background(), env.global, env.cli))

	var out map[string]any
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &out))
	require.Equal(t, "2.2", out["version"])
	require.Equal(t, "java -jar /tmp/plantuml.jar", out["plantuml"])
}

func TestVersionsCmd(t *testing.T) {
	repo, wt, dir := helpers.SetupTestGitRepo(t)
	env := newTestEnvAt(t, dir)
	hash := helpers.Commit(t, wt, env.docs, "index.rst", "VTL")
	helpers.AddBranch(t, repo, "v2.1", hash)
	helpers.AddBranch(t, repo, "v2.2", hash)
	helpers.AddTag(t, repo, "v2.0", hash)

	require.NoError(t, (&VersionsCmd{JSON: true}).Run(env.global, env.cli))

	var got []versioning.Version
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &got))
	require.Len(t, got, 3)
	require.Equal(t, "latest", got[0].OutputDir)
	require.Equal(t, "v2.1", got[1].Name)
	require.Equal(t, "v2.0", got[2].Name)
}

func TestInitCmd(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.Remove(filepath.Join(env.docs, "vtldocs.yaml")))
	require.NoError(t, os.RemoveAll(filepath.Join(env.docs, "templates")))

	require.NoError(t, (&InitCmd{}).Run(env.global, env.cli))
	require.Contains(t, env.out.String(), "initialized successfully")

	fa := helpers.NewFileAssertions(t, env.docs)
	fa.AssertFileContains("vtldocs.yaml", "operators_dir: reference_manual/operators")
	fa.AssertFileExists("templates/examples.rst.tmpl")

	require.Error(t, (&InitCmd{}).Run(env.global, env.cli))
	require.NoError(t, (&InitCmd{Force: true}).Run(env.global, env.cli))
}

func TestMetricsFile(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "vtldocs.prom")
	global := NewGlobal(path)
	global.Out = env.out

	require.NoError(t, (&GenerateCmd{}).Run(context.Background(), global, env.cli))
	require.NoError(t, global.Finish("generate", 0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `vtldocs_operator_results_total{result="rendered"} 1`)
	require.Contains(t, string(data), `vtldocs_command_duration_seconds{command="generate"} 0`)
}
