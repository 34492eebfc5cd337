package versioning

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/sdmx-twg/vtldocs/internal/logfields"
)

// BranchSource reports the branch currently checked out.
type BranchSource interface {
	CurrentBranch(ctx context.Context) (string, error)
}

// Resolver derives the documentation version (major.minor) from the current
// branch name. It never fails: any problem yields the default version.
type Resolver struct {
	sources []BranchSource
	pattern *regexp.Regexp
	def     string
}

// NewResolver compiles pattern, which is matched at the start of the branch
// name and must capture the version in its first group. Sources are tried in
// order until one reports a branch.
func NewResolver(pattern, def string, sources ...BranchSource) (*Resolver, error) {
	re, err := compileAnchored(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile version pattern: %w", err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("version pattern %q has no capture group", pattern)
	}
	return &Resolver{sources: sources, pattern: re, def: def}, nil
}

// Default returns the fallback version.
func (r *Resolver) Default() string { return r.def }

// Resolve returns the version for the current branch, or the default.
func (r *Resolver) Resolve(ctx context.Context) string {
	for _, src := range r.sources {
		branch, err := src.CurrentBranch(ctx)
		if err != nil {
			slog.Debug("Branch source failed", logfields.Error(err))
			continue
		}
		if v, ok := r.FromBranch(branch); ok {
			slog.Debug("Resolved version from branch", logfields.Branch(branch), logfields.Version(v))
			return v
		}
		slog.Debug("Branch carries no version, using default", logfields.Branch(branch), logfields.Version(r.def))
		return r.def
	}
	return r.def
}

// FromBranch extracts the version from a branch name.
func (r *Resolver) FromBranch(branch string) (string, bool) {
	m := r.pattern.FindStringSubmatch(branch)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// compileAnchored anchors pattern at the start of the input.
func compileAnchored(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + pattern + `)`)
}
