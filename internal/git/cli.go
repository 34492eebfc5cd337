package git

import (
	"context"
	"io"
	"strings"

	sh "github.com/codeskyblue/go-sh"

	derrors "github.com/sdmx-twg/vtldocs/internal/errors"
)

// CLIBranchSource reads the current branch by running the git binary in Dir.
type CLIBranchSource struct {
	Dir string
	// Binary defaults to "git".
	Binary string
}

// CurrentBranch runs `git rev-parse --abbrev-ref HEAD`.
func (s CLIBranchSource) CurrentBranch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	bin := s.Binary
	if bin == "" {
		bin = "git"
	}

	session := sh.NewSession()
	session.Stderr = io.Discard
	if s.Dir != "" {
		session.SetDir(s.Dir)
	}
	out, err := session.Command(bin, "rev-parse", "--abbrev-ref", "HEAD").Output()
	if err != nil {
		return "", derrors.GitFailure("rev-parse", err)
	}

	branch := strings.TrimSpace(string(out))
	if branch == "" || branch == "HEAD" {
		return "", ErrDetachedHead
	}
	return branch, nil
}
