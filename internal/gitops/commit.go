package gitops

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/constellos/agenthooks/internal/taskedits"
)

// maxSubjectLen caps the git commit subject line.
const maxSubjectLen = 72

// CommitTaskEdits stages the files a sub-agent created or edited and commits
// them with a subject derived from the run. Deleted files are staged with
// `git add -A` on their paths so removals land in the same commit. Returns
// the commit subject, or "" when there was nothing to commit.
func CommitTaskEdits(r Runner, dir, prefix string, res *taskedits.Result) (string, error) {
	if !IsRepo(r, dir) {
		return "", fmt.Errorf("%s is not a git repository", dir)
	}

	paths := stagePaths(res)
	if len(paths) == 0 {
		return "", nil
	}

	args := append([]string{"add", "-A", "--"}, paths...)
	if _, err := r.Run(dir, "git", args...); err != nil {
		return "", fmt.Errorf("staging task edits: %w", err)
	}

	// Nothing staged means the worktree already matched the transcript.
	if _, err := r.Run(dir, "git", "diff", "--cached", "--quiet"); err == nil {
		return "", nil
	}

	subject := Subject(prefix, res)
	if _, err := r.Run(dir, "git", "commit", "-m", subject); err != nil {
		return "", fmt.Errorf("committing task edits: %w", err)
	}
	return subject, nil
}

// stagePaths returns the union of the result's file lists, deduplicated in
// first-occurrence order.
func stagePaths(res *taskedits.Result) []string {
	var paths []string
	seen := make(map[string]bool)
	for _, list := range [][]string{res.AgentNewFiles, res.AgentEditedFiles, res.AgentDeletedFiles} {
		for _, p := range list {
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			paths = append(paths, p)
		}
	}
	return paths
}

// Subject builds the commit subject for a sub-agent run: the configured
// prefix, the subagent type, and the first line of the prompt, truncated to
// fit a conventional subject length.
func Subject(prefix string, res *taskedits.Result) string {
	summary := res.AgentPrompt
	if idx := strings.IndexByte(summary, '\n'); idx >= 0 {
		summary = summary[:idx]
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		summary = fmt.Sprintf("%d file(s) changed", len(stagePaths(res)))
	}

	subject := fmt.Sprintf("%s(%s): %s", prefix, res.SubagentType, summary)
	if len(subject) > maxSubjectLen {
		cut := maxSubjectLen - 3
		for cut > 0 && !utf8.RuneStart(subject[cut]) {
			cut--
		}
		subject = subject[:cut] + "..."
	}
	return subject
}
