// Package git reads branch and reference information from the documentation
// repository.
//
// Reads go through go-git. When go-git cannot open a checkout (for example a
// linked worktree layout it does not understand) CLIBranchSource shells out to
// the git binary instead.
package git
