package git

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	derrors "github.com/sdmx-twg/vtldocs/internal/errors"
)

// ErrDetachedHead is returned when HEAD does not point at a branch.
var ErrDetachedHead = errors.New("HEAD is detached")

// RefKind tells local branches, remote-tracking branches and tags apart.
type RefKind string

const (
	KindBranch RefKind = "heads"
	KindRemote RefKind = "remotes"
	KindTag    RefKind = "tags"
)

// Reference is a branch or tag found in the repository.
type Reference struct {
	Kind RefKind
	// Name is the short name without remote prefix ("v2.2", not "origin/v2.2").
	Name string
	// Remote is set for KindRemote only.
	Remote string
	Hash   string
}

// FullName returns the fully qualified reference name.
func (r Reference) FullName() string {
	if r.Kind == KindRemote {
		return "refs/remotes/" + r.Remote + "/" + r.Name
	}
	return "refs/" + string(r.Kind) + "/" + r.Name
}

// Repository wraps a go-git repository opened from a working directory.
type Repository struct {
	repo *git.Repository
	path string
}

// Open opens the repository containing path, searching parent directories.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, derrors.GitFailure("open", err).WithContext("path", path)
	}
	return &Repository{repo: repo, path: path}, nil
}

// CurrentBranch returns the short name of the branch HEAD points at.
func (r *Repository) CurrentBranch(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", derrors.GitFailure("read HEAD", err)
	}
	if !head.Name().IsBranch() {
		return "", ErrDetachedHead
	}
	return head.Name().Short(), nil
}

// References lists local branches, remote-tracking branches and tags, sorted
// by full reference name. Symbolic references such as origin/HEAD are skipped.
func (r *Repository) References() ([]Reference, error) {
	iter, err := r.repo.References()
	if err != nil {
		return nil, derrors.GitFailure("list references", err)
	}

	var refs []Reference
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		switch {
		case name.IsBranch():
			refs = append(refs, Reference{Kind: KindBranch, Name: name.Short(), Hash: ref.Hash().String()})
		case name.IsTag():
			refs = append(refs, Reference{Kind: KindTag, Name: name.Short(), Hash: ref.Hash().String()})
		case name.IsRemote():
			remote, branch, ok := strings.Cut(name.Short(), "/")
			if !ok || branch == "HEAD" {
				return nil
			}
			refs = append(refs, Reference{Kind: KindRemote, Name: branch, Remote: remote, Hash: ref.Hash().String()})
		}
		return nil
	})
	if err != nil {
		return nil, derrors.GitFailure("list references", fmt.Errorf("iterate: %w", err))
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].FullName() < refs[j].FullName() })
	return refs, nil
}

// WorkdirSource opens the repository containing Path on every call and reads
// its current branch.
type WorkdirSource struct {
	Path string
}

func (s WorkdirSource) CurrentBranch(ctx context.Context) (string, error) {
	r, err := Open(s.Path)
	if err != nil {
		return "", err
	}
	return r.CurrentBranch(ctx)
}
