package examples

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/sdmx-twg/vtldocs/internal/config"
	derrors "github.com/sdmx-twg/vtldocs/internal/errors"
	"github.com/sdmx-twg/vtldocs/internal/metrics"
	"github.com/sdmx-twg/vtldocs/internal/templates"
	helpers "github.com/sdmx-twg/vtldocs/internal/testutil/testutils"
)

const listingTemplate = `{{ .op_type }}/{{ .operator }} {{ .repo_url }}
{{ range .inputs }}{{ .Position }}:{{ .Name }}:{{ .File }}
{{ end }}{{ range .examples }}{{ .Position }}:{{ .Name }}:{{ .Folder }}
{{ end }}`

const unionDir = "reference_manual/operators/general_purpose/union"

func newTestGenerator(t *testing.T, root, tpl string) *Generator {
	t.Helper()
	cfg := config.Default()
	cfg.DocsDir = root
	cfg.GitHub.User = "sdmx-twg"
	cfg.GitHub.Repo = "vtl"

	set, err := templates.LoadDir(filepath.Join(root, "templates"))
	require.NoError(t, err)
	if tpl != "" {
		helpers.WriteTree(t, root, map[string]string{"templates/examples": tpl})
		set, err = templates.LoadDir(filepath.Join(root, "templates"))
		require.NoError(t, err)
	}
	return NewGenerator(cfg, set, "2.2")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestGenerateOrdersFixturesByStem(t *testing.T) {
	root := t.TempDir()
	helpers.WriteTree(t, root, map[string]string{
		unionDir + "/examples/ds_2.csv":   "Id_1,Me_1\n",
		unionDir + "/examples/ds_1.csv":   "Id_1,Me_1\n",
		unionDir + "/examples/ex_b.vtl":   "DS_r := union(DS_1, DS_2);",
		unionDir + "/examples/ex_a.vtl":   "DS_r := union(DS_1);",
		unionDir + "/examples/notes.txt":  "ignored",
		unionDir + "/examples/ds_3.csv/x": "a directory is not a fixture",
	})

	report, err := newTestGenerator(t, root, listingTemplate).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	require.Equal(t, metrics.OperatorRendered, report.Results[0].Outcome)
	require.Equal(t, 2, report.Results[0].Inputs)
	require.Equal(t, 2, report.Results[0].Examples)

	want := "general_purpose/union https://github.com/sdmx-twg/vtl/blob/2.2/docs/reference_manual/operators\n" +
		"1:ds_1:examples/ds_1.csv\n" +
		"2:ds_2:examples/ds_2.csv\n" +
		"1:ex_a:reference_manual/operators/general_purpose/union/examples\n" +
		"2:ex_b:reference_manual/operators/general_purpose/union/examples\n"
	got := readFile(t, filepath.Join(root, unionDir, "examples.rst"))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("examples.rst mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	root := t.TempDir()
	helpers.WriteTree(t, root, map[string]string{
		unionDir + "/examples/ds_1.csv": "Id_1\n",
		unionDir + "/examples/ex_1.vtl": "DS_r := DS_1;",
	})
	gen := newTestGenerator(t, root, listingTemplate)
	out := filepath.Join(root, unionDir, "examples.rst")

	_, err := gen.Run(context.Background())
	require.NoError(t, err)
	first := readFile(t, out)

	report, err := gen.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Count(metrics.OperatorUnchanged))
	if diff := cmp.Diff(first, readFile(t, out)); diff != "" {
		t.Fatalf("second run changed output (-first +second):\n%s", diff)
	}

	require.NoError(t, os.WriteFile(out, []byte("hand edited"), 0o600))
	report, err = gen.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Count(metrics.OperatorRendered))
	require.Equal(t, first, readFile(t, out))
}

func TestGenerateAppendsEndText(t *testing.T) {
	root := t.TempDir()
	helpers.WriteTree(t, root, map[string]string{
		unionDir + "/examples/ex_1.vtl":     "DS_r := DS_1;",
		unionDir + "/examples/end_text.rst": "Closing notes.\n",
	})

	_, err := newTestGenerator(t, root, "body").Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "body\n\n.. include:: examples/end_text.rst\n",
		readFile(t, filepath.Join(root, unionDir, "examples.rst")))
}

func TestGenerateSkipsOperatorsWithoutExamples(t *testing.T) {
	root := t.TempDir()
	helpers.WriteTree(t, root, map[string]string{
		"reference_manual/operators/general_purpose/membership/index.rst": "membership",
		"reference_manual/operators/general_purpose/README.md":            "not an operator",
		unionDir + "/examples/ds_1.csv":                                   "Id_1\n",
	})

	report, err := newTestGenerator(t, root, listingTemplate).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	require.Equal(t, "membership", report.Results[0].Operator.Name)
	require.Equal(t, metrics.OperatorSkipped, report.Results[0].Outcome)
	require.Equal(t, "union", report.Results[1].Operator.Name)

	fa := helpers.NewFileAssertions(t, root)
	fa.AssertFileAbsent("reference_manual/operators/general_purpose/membership/examples.rst")
	fa.AssertFileExists(unionDir + "/examples.rst")
}

func TestGenerateWithoutTemplateWritesNothing(t *testing.T) {
	root := t.TempDir()
	helpers.WriteTree(t, root, map[string]string{
		unionDir + "/examples/ds_1.csv": "Id_1\n",
	})

	report, err := newTestGenerator(t, root, "").Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, report.Results)
	helpers.NewFileAssertions(t, root).AssertFileAbsent(unionDir + "/examples.rst")
}

func TestGenerateWithoutOperatorsRoot(t *testing.T) {
	report, err := newTestGenerator(t, t.TempDir(), listingTemplate).Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, report.Results)
}

func TestGenerateRenderError(t *testing.T) {
	root := t.TempDir()
	helpers.WriteTree(t, root, map[string]string{
		unionDir + "/examples/ds_1.csv": "Id_1\n",
	})

	_, err := newTestGenerator(t, root, "{{ .missing }}").Run(context.Background())
	require.Error(t, err)
	require.True(t, derrors.IsCategory(err, derrors.CategoryTemplate))
}

func TestGenerateHonoursCancellation(t *testing.T) {
	root := t.TempDir()
	helpers.WriteTree(t, root, map[string]string{
		unionDir + "/examples/ds_1.csv": "Id_1\n",
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestGenerator(t, root, listingTemplate).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

type countingRecorder struct {
	metrics.NoopRecorder
	results  map[metrics.OperatorResult]int
	fixtures map[metrics.FixtureKind]int
}

func (r *countingRecorder) IncOperatorResult(res metrics.OperatorResult) { r.results[res]++ }
func (r *countingRecorder) AddFixtures(kind metrics.FixtureKind, n int)   { r.fixtures[kind] += n }
func (r *countingRecorder) ObserveCommandDuration(string, time.Duration) {}

func TestGenerateRecordsMetrics(t *testing.T) {
	root := t.TempDir()
	helpers.WriteTree(t, root, map[string]string{
		unionDir + "/examples/ds_1.csv": "Id_1\n",
		unionDir + "/examples/ds_2.csv": "Id_1\n",
		unionDir + "/examples/ex_1.vtl": "DS_r := DS_1;",
		"reference_manual/operators/string/upper/index.rst": "upper",
	})
	rec := &countingRecorder{
		results:  map[metrics.OperatorResult]int{},
		fixtures: map[metrics.FixtureKind]int{},
	}

	_, err := newTestGenerator(t, root, listingTemplate).WithRecorder(rec).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[metrics.OperatorResult]int{
		metrics.OperatorRendered: 1,
		metrics.OperatorSkipped:  1,
	}, rec.results)
	require.Equal(t, 2, rec.fixtures[metrics.FixtureInput])
	require.Equal(t, 1, rec.fixtures[metrics.FixtureExample])
}

func TestRepoURL(t *testing.T) {
	gh := config.GitHubConfig{User: "sdmx-twg", Repo: "vtl", ConfPyPath: "/docs/"}
	require.Equal(t, "https://github.com/sdmx-twg/vtl/blob/2.1/docs/reference_manual/operators",
		RepoURL(gh, "2.1", "reference_manual/operators"))
}
