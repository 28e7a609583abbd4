package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/constellos/agenthooks/internal/hooks"
	"github.com/constellos/agenthooks/internal/mdlint"
)

var postToolUseCmd = &cobra.Command{
	Use:   "post-tool-use",
	Short: "PostToolUse hook: lint markdown structure after file edits",
	RunE:  runPostToolUse,
}

func init() {
	hookCmd.AddCommand(postToolUseCmd)
}

func runPostToolUse(cmd *cobra.Command, args []string) error {
	in := hooks.ReadInput(os.Stdin)

	switch in.ToolName {
	case "Write", "Edit", "MultiEdit":
	default:
		emit(hooks.Allow())
		return nil
	}

	var target struct {
		FilePath string `json:"file_path"`
	}
	if err := json.Unmarshal(in.ToolInput, &target); err != nil || !strings.HasSuffix(target.FilePath, ".md") {
		emit(hooks.Allow())
		return nil
	}

	violations, err := mdlint.LintFile(target.FilePath, mdlint.Options{
		RequireDescription: isAgentDefinition(target.FilePath),
	})
	if err != nil {
		// The file may have been renamed or deleted since the edit.
		hookWarn("linting %s: %v", target.FilePath, err)
		emit(hooks.Allow())
		return nil
	}
	if len(violations) == 0 {
		emit(hooks.Allow())
		return nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s has %d markdown structure issue(s):\n", target.FilePath, len(violations))
	for _, v := range violations {
		sb.WriteString("  " + v.String() + "\n")
	}
	// Annotate, never block: structure issues are advisory at edit time.
	emit(hooks.AddContext("PostToolUse", sb.String()))
	return nil
}

// isAgentDefinition reports whether a path lies under a .claude/agents/
// directory, where frontmatter carries the agent contract.
func isAgentDefinition(path string) bool {
	dir := filepath.ToSlash(filepath.Dir(path))
	return strings.HasSuffix(dir, ".claude/agents")
}
