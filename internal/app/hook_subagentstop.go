package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/constellos/agenthooks/internal/gitops"
	"github.com/constellos/agenthooks/internal/hooks"
	"github.com/constellos/agenthooks/internal/taskedits"
	"github.com/constellos/agenthooks/internal/transcript"
)

var subagentStopCmd = &cobra.Command{
	Use:   "subagent-stop",
	Short: "SubagentStop hook: assemble the sub-agent's task edits and commit them",
	RunE:  runSubagentStop,
}

func init() {
	hookCmd.AddCommand(subagentStopCmd)
}

func runSubagentStop(cmd *cobra.Command, args []string) error {
	in := hooks.ReadInput(os.Stdin)

	subPath := in.AgentTranscriptPath
	if subPath == "" {
		subPath = in.TranscriptPath
	}
	if subPath == "" {
		hookWarn("subagent-stop without a transcript path")
		emit(hooks.Allow())
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		hookWarn("%v", err)
		emit(hooks.Allow())
		return nil
	}

	db, err := openStore(cfg)
	if err != nil {
		hookWarn("%v", err)
		db = nil
	}
	if db != nil {
		defer db.Close()
	}

	opts := taskedits.Options{MatchWindow: cfg.MatchWindow()}
	if db != nil {
		opts.Store = db
	}

	res, err := taskedits.Assemble(subPath, opts)
	if err != nil {
		// Typed failures here mean the payload, not the host action, is
		// wrong; report and let the host proceed.
		switch {
		case errors.Is(err, taskedits.ErrInvalidAgentTranscript),
			errors.Is(err, taskedits.ErrParentNotFound),
			errors.Is(err, transcript.ErrEmptyTranscript),
			errors.Is(err, transcript.ErrNotFound):
			hookWarn("task edits unavailable: %v", err)
		default:
			hookWarn("assembling task edits: %v", err)
		}
		emit(hooks.Allow())
		return nil
	}

	if !cfg.Commit.Enabled {
		emit(summarize(res))
		return nil
	}

	if !hasFileChanges(res) {
		emit(summarize(res))
		return nil
	}
	dir := in.CWD
	if dir == "" {
		hookWarn("no working directory in payload, skipping commit")
		emit(summarize(res))
		return nil
	}

	subject, err := gitops.CommitTaskEdits(gitops.ExecRunner{}, dir, cfg.Commit.Prefix, res)
	if err != nil {
		hookWarn("commit automation: %v", err)
		emit(summarize(res))
		return nil
	}
	if subject != "" {
		hookWarn("committed: %s", subject)
	}
	emit(summarize(res))
	return nil
}

// hasFileChanges reports whether a run touched any file, deletions included.
func hasFileChanges(res *taskedits.Result) bool {
	return len(res.AgentNewFiles)+len(res.AgentEditedFiles)+len(res.AgentDeletedFiles) > 0
}

// summarize annotates the stop event with what the sub-agent did.
func summarize(res *taskedits.Result) *hooks.Output {
	text := fmt.Sprintf("sub-agent %s (%s): %d new, %d edited, %d deleted file(s)",
		res.AgentSessionID, res.SubagentType,
		len(res.AgentNewFiles), len(res.AgentEditedFiles), len(res.AgentDeletedFiles))
	return hooks.AddContext("SubagentStop", text)
}
