package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/constellos/agenthooks/internal/hooks"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Hook entry points invoked by the Claude Code host",
	Long: `Each subcommand is wired into the host's hook configuration for one
lifecycle event and reads the host's JSON payload on stdin:

  pre-tool-use    PreToolUse    record sub-agent spawn context; guard ports
  post-tool-use   PostToolUse   lint markdown files after edits
  subagent-stop   SubagentStop  assemble task edits; commit automation
  session-end     SessionEnd    counters, port release, side-channel GC

Hook commands exit 0 even when their work fails: a broken hook must never
block the host action.`,
}

func init() {
	rootCmd.AddCommand(hookCmd)
}

// hookWarn reports a non-fatal hook problem on stderr. Hooks degrade, they
// do not fail.
func hookWarn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "agenthooks: "+format+"\n", args...)
}

// emit writes a hook response to stdout, degrading to the empty response on
// marshal problems.
func emit(out *hooks.Output) {
	if out == nil {
		out = hooks.Allow()
	}
	if err := out.Write(os.Stdout); err != nil {
		fmt.Println("{}")
	}
}
