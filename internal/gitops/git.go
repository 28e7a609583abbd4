// Package gitops wraps the git and gh command lines for the hooks that act
// on a sub-agent's task edits: commit automation and PR status polling.
package gitops

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes external commands in a working directory. It exists so
// tests can substitute a fake.
type Runner interface {
	Run(dir string, name string, args ...string) (string, error)
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

// Run executes one command and returns its trimmed combined output.
func (ExecRunner) Run(dir string, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	out := strings.TrimSpace(buf.String())
	if err != nil {
		return out, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, out)
	}
	return out, nil
}

// IsRepo reports whether dir is inside a git work tree.
func IsRepo(r Runner, dir string) bool {
	out, err := r.Run(dir, "git", "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}
