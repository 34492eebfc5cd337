package versioning

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/sdmx-twg/vtldocs/internal/config"
	"github.com/sdmx-twg/vtldocs/internal/git"
)

// Version is one documentation version built by the multi-version run.
type Version struct {
	// Name is the reference short name ("v2.2").
	Name string      `json:"name" yaml:"name"`
	Kind git.RefKind `json:"kind" yaml:"kind"`
	// OutputDir is the directory the version is published under.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	Latest    bool   `json:"latest" yaml:"latest"`
	Label     string `json:"label" yaml:"label"`
}

// Whitelist selects the references that take part in the multi-version build.
type Whitelist struct {
	tags, branches, remotes *regexp.Regexp
	latest                  string
	rename                  string
	outputDirFormat         string
}

// NewWhitelist compiles the whitelist patterns.
func NewWhitelist(cfg config.MultiversionConfig) (*Whitelist, error) {
	w := &Whitelist{
		latest:          cfg.LatestVersion,
		rename:          cfg.RenameLatestVersion,
		outputDirFormat: cfg.OutputDirFormat,
	}
	var err error
	if w.tags, err = compileAnchored(cfg.TagWhitelist); err != nil {
		return nil, fmt.Errorf("tag whitelist: %w", err)
	}
	if w.branches, err = compileAnchored(cfg.BranchWhitelist); err != nil {
		return nil, fmt.Errorf("branch whitelist: %w", err)
	}
	if w.remotes, err = compileAnchored(cfg.RemoteWhitelist); err != nil {
		return nil, fmt.Errorf("remote whitelist: %w", err)
	}
	return w, nil
}

// Match reports whether ref is whitelisted.
func (w *Whitelist) Match(ref git.Reference) bool {
	switch ref.Kind {
	case git.KindTag:
		return w.tags.MatchString(ref.Name)
	case git.KindBranch:
		return w.branches.MatchString(ref.Name)
	case git.KindRemote:
		return w.remotes.MatchString(ref.Remote) && w.branches.MatchString(ref.Name)
	default:
		return false
	}
}

// Select filters refs and returns one Version per distinct name: the latest
// version first, the rest newest first. When a name exists as several kinds
// the local branch wins over the remote branch, which wins over the tag.
func (w *Whitelist) Select(refs []git.Reference) []Version {
	byName := make(map[string]git.Reference)
	for _, ref := range refs {
		if !w.Match(ref) {
			continue
		}
		if prev, ok := byName[ref.Name]; ok && kindRank(prev.Kind) <= kindRank(ref.Kind) {
			continue
		}
		byName[ref.Name] = ref
	}

	versions := make([]Version, 0, len(byName))
	for name, ref := range byName {
		v := Version{Name: name, Kind: ref.Kind, Label: name}
		dirName := name
		if name == w.latest {
			v.Latest = true
			v.Label = fmt.Sprintf("Latest (%s)", name)
			if w.rename != "" {
				dirName = w.rename
			}
		}
		v.OutputDir = w.outputDir(dirName, ref.Kind)
		versions = append(versions, v)
	}

	sort.Slice(versions, func(i, j int) bool {
		a, b := versions[i], versions[j]
		if a.Latest != b.Latest {
			return a.Latest
		}
		if c := semver.Compare(a.Name, b.Name); c != 0 {
			return c > 0
		}
		return a.Name < b.Name
	})
	return versions
}

func (w *Whitelist) outputDir(name string, kind git.RefKind) string {
	out := strings.ReplaceAll(w.outputDirFormat, "{ref.name}", name)
	return strings.ReplaceAll(out, "{ref.kind}", string(kind))
}

func kindRank(k git.RefKind) int {
	switch k {
	case git.KindBranch:
		return 0
	case git.KindRemote:
		return 1
	default:
		return 2
	}
}

// Fallback is the selection used when no reference can be read: the latest
// version alone.
func (w *Whitelist) Fallback() []Version {
	if w.latest == "" {
		return nil
	}
	dirName := w.latest
	if w.rename != "" {
		dirName = w.rename
	}
	return []Version{{
		Name:      w.latest,
		Kind:      git.KindBranch,
		OutputDir: w.outputDir(dirName, git.KindBranch),
		Latest:    true,
		Label:     fmt.Sprintf("Latest (%s)", w.latest),
	}}
}
