// Package examples generates one examples page per documented operator from
// the fixture files stored next to it.
//
// The operators root holds one folder per operator type, each holding one
// folder per operator:
//
//	reference_manual/operators/
//	  general_purpose/
//	    union/
//	      examples/
//	        ds_1.csv  ds_2.csv  ex_1.vtl  end_text.rst
//	      examples.rst   <- generated
package examples

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/sdmx-twg/vtldocs/internal/config"
	derrors "github.com/sdmx-twg/vtldocs/internal/errors"
	"github.com/sdmx-twg/vtldocs/internal/logfields"
	"github.com/sdmx-twg/vtldocs/internal/metrics"
	"github.com/sdmx-twg/vtldocs/internal/templates"
)

// Operator identifies one operator folder.
type Operator struct {
	OpType string
	Name   string
	// Dir is the operator folder on disk.
	Dir string
}

// Result describes what happened to one operator.
type Result struct {
	Operator Operator
	Outcome  metrics.OperatorResult
	Inputs   int
	Examples int
	// Output is the generated file; empty when the operator was skipped.
	Output string
}

// Report summarises a generator run in operator order.
type Report struct {
	Results  []Result
	Duration time.Duration
}

// Count returns how many operators ended with outcome.
func (r *Report) Count(outcome metrics.OperatorResult) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// Generator renders the examples page of every operator.
type Generator struct {
	cfg      config.ExamplesConfig
	root     string
	tpl      *template.Template
	repoURL  string
	version  string
	recorder metrics.Recorder
}

// NewGenerator builds a generator for cfg. The page template is looked up in
// set; when it is missing Run renders nothing.
func NewGenerator(cfg *config.Config, set *templates.Set, version string) *Generator {
	g := &Generator{
		cfg:      cfg.Examples,
		root:     cfg.Path(cfg.Examples.OperatorsDir),
		repoURL:  RepoURL(cfg.GitHub, version, cfg.Examples.OperatorsDir),
		version:  version,
		recorder: metrics.NoopRecorder{},
	}
	if tpl, ok := set.Lookup(cfg.Examples.Template); ok {
		g.tpl = tpl
	}
	return g
}

// WithRecorder sets the metrics recorder.
func (g *Generator) WithRecorder(r metrics.Recorder) *Generator {
	if r != nil {
		g.recorder = r
	}
	return g
}

// RepoURL is the GitHub URL of the operators root at version.
func RepoURL(gh config.GitHubConfig, version, operatorsDir string) string {
	return "https://github.com/" + gh.User + "/" + gh.Repo + "/blob/" + version + "/" +
		path.Join(strings.Trim(gh.ConfPyPath, "/"), filepath.ToSlash(operatorsDir))
}

// Operators lists operator folders in name order. A missing root yields none.
func (g *Generator) Operators() ([]Operator, error) {
	types, err := os.ReadDir(g.root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, derrors.ScanFailed(g.root, err)
	}

	var ops []Operator
	for _, t := range types {
		if !t.IsDir() {
			continue
		}
		typeDir := filepath.Join(g.root, t.Name())
		entries, err := os.ReadDir(typeDir)
		if err != nil {
			return nil, derrors.ScanFailed(typeDir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				ops = append(ops, Operator{OpType: t.Name(), Name: e.Name(), Dir: filepath.Join(typeDir, e.Name())})
			}
		}
	}
	return ops, nil
}

// Run renders every operator that has an examples folder.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{}

	if g.tpl == nil {
		slog.Info("No examples template loaded; skipping example pages", logfields.Template(g.cfg.Template))
		return report, nil
	}

	ops, err := g.Operators()
	if err != nil {
		return nil, err
	}

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := g.Generate(op)
		if err != nil {
			return nil, err
		}
		g.recorder.IncOperatorResult(res.Outcome)
		g.recorder.AddFixtures(metrics.FixtureInput, res.Inputs)
		g.recorder.AddFixtures(metrics.FixtureExample, res.Examples)
		report.Results = append(report.Results, res)
	}

	report.Duration = time.Since(start)
	slog.Info("Example pages generated",
		slog.Int("rendered", report.Count(metrics.OperatorRendered)),
		slog.Int("unchanged", report.Count(metrics.OperatorUnchanged)),
		slog.Int("skipped", report.Count(metrics.OperatorSkipped)),
		logfields.DurationMS(float64(report.Duration.Microseconds())/1000))
	return report, nil
}

// Generate renders and writes the page of a single operator.
func (g *Generator) Generate(op Operator) (Result, error) {
	res := Result{Operator: op, Outcome: metrics.OperatorSkipped}
	attrs := []any{logfields.OpType(op.OpType), logfields.Operator(op.Name)}

	fixturesDir := filepath.Join(op.Dir, g.cfg.Folder)
	if st, err := os.Stat(fixturesDir); err != nil || !st.IsDir() {
		slog.Debug("No examples folder", attrs...)
		return res, nil
	}

	content, inputs, exs, err := g.Render(op)
	if err != nil {
		return res, err
	}
	res.Inputs, res.Examples = inputs, exs

	out := filepath.Join(op.Dir, g.cfg.OutputFile)
	res.Output = out
	// #nosec G304 -- out is built from the configured operators root.
	if existing, err := os.ReadFile(out); err == nil && bytes.Equal(existing, []byte(content)) {
		res.Outcome = metrics.OperatorUnchanged
		slog.Debug("Examples page unchanged", append(attrs, logfields.Path(out))...)
		return res, nil
	}

	// #nosec G306 -- generated documentation sources are world-readable.
	if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
		return res, derrors.WriteFailed(out, err)
	}
	res.Outcome = metrics.OperatorRendered
	slog.Debug("Examples page written", append(attrs, logfields.Path(out), logfields.Count(inputs+exs))...)
	return res, nil
}

// Render produces the page content for op together with the number of input
// and example fixtures it lists.
func (g *Generator) Render(op Operator) (string, int, int, error) {
	fixturesDir := filepath.Join(op.Dir, g.cfg.Folder)
	folder := path.Join(filepath.ToSlash(g.cfg.OperatorsDir), op.OpType, op.Name, g.cfg.Folder)

	inputs, err := CollectFixtures(fixturesDir, g.cfg.InputsGlob, folder, g.cfg.Folder)
	if err != nil {
		return "", 0, 0, err
	}
	exs, err := CollectFixtures(fixturesDir, g.cfg.ExamplesGlob, folder, g.cfg.Folder)
	if err != nil {
		return "", 0, 0, err
	}

	text, err := templates.Render(g.tpl, map[string]any{
		"examples": exs,
		"inputs":   inputs,
		"op_type":  op.OpType,
		"operator": op.Name,
		"repo_url": g.repoURL,
		"version":  g.version,
	})
	if err != nil {
		return "", 0, 0, derrors.TemplateRender(g.tpl.Name(), op.OpType+"/"+op.Name, err)
	}

	if g.cfg.EndText != "" {
		if _, err := os.Stat(filepath.Join(fixturesDir, g.cfg.EndText)); err == nil {
			text = appendInclude(text, path.Join(g.cfg.Folder, g.cfg.EndText))
		}
	}
	return text, len(inputs), len(exs), nil
}

// appendInclude adds an include directive on its own paragraph.
func appendInclude(text, target string) string {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if text != "" {
		text += "\n"
	}
	return text + ".. include:: " + target + "\n"
}
