package helpers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// SetupTestGitRepo initializes a temporary git repository for testing.
// Returns the repository, its worktree, and the absolute path to the temporary directory.
func SetupTestGitRepo(t *testing.T) (*git.Repository, *git.Worktree, string) {
	t.Helper()

	tempDir := t.TempDir()

	repo, err := git.PlainInit(tempDir, false)
	if err != nil {
		t.Fatalf("failed to initialize git repo: %v", err)
	}

	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}

	return repo, w, tempDir
}

// Commit writes filename and commits it, returning the commit hash.
func Commit(t *testing.T, wt *git.Worktree, repoPath, filename, content string) plumbing.Hash {
	t.Helper()
	full := filepath.Join(repoPath, filename)
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := wt.Add(filename); err != nil {
		t.Fatalf("add: %v", err)
	}
	hash, err := wt.Commit("add "+filename, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "t@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return hash
}

// PointHead makes HEAD a symbolic ref to branch, creating the branch at hash.
func PointHead(t *testing.T, repo *git.Repository, branch string, hash plumbing.Hash) {
	t.Helper()
	name := plumbing.NewBranchReferenceName(branch)
	if err := repo.Storer.SetReference(plumbing.NewHashReference(name, hash)); err != nil {
		t.Fatalf("create branch %s: %v", branch, err)
	}
	if err := repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, name)); err != nil {
		t.Fatalf("point HEAD at %s: %v", branch, err)
	}
}

// DetachHead points HEAD directly at hash.
func DetachHead(t *testing.T, repo *git.Repository, hash plumbing.Hash) {
	t.Helper()
	if err := repo.Storer.SetReference(plumbing.NewHashReference(plumbing.HEAD, hash)); err != nil {
		t.Fatalf("detach HEAD: %v", err)
	}
}

// AddBranch creates a local branch at hash without moving HEAD.
func AddBranch(t *testing.T, repo *git.Repository, branch string, hash plumbing.Hash) {
	t.Helper()
	if err := repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewBranchReferenceName(branch), hash)); err != nil {
		t.Fatalf("create branch %s: %v", branch, err)
	}
}

// AddRemoteBranch creates refs/remotes/<remote>/<branch> at hash.
func AddRemoteBranch(t *testing.T, repo *git.Repository, remote, branch string, hash plumbing.Hash) {
	t.Helper()
	if err := repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewRemoteReferenceName(remote, branch), hash)); err != nil {
		t.Fatalf("create remote branch %s/%s: %v", remote, branch, err)
	}
}

// AddTag creates a lightweight tag at hash.
func AddTag(t *testing.T, repo *git.Repository, tag string, hash plumbing.Hash) {
	t.Helper()
	if _, err := repo.CreateTag(tag, hash, nil); err != nil {
		t.Fatalf("create tag %s: %v", tag, err)
	}
}
