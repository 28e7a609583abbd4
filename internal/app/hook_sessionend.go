package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/constellos/agenthooks/internal/gitops"
	"github.com/constellos/agenthooks/internal/hooks"
)

// prNoteTimeout bounds the best-effort PR status lookup at session end.
const prNoteTimeout = 10 * time.Second

var sessionEndCmd = &cobra.Command{
	Use:   "session-end",
	Short: "SessionEnd hook: bump counters, release ports, collect stale contexts",
	RunE:  runSessionEnd,
}

func init() {
	hookCmd.AddCommand(sessionEndCmd)
}

func runSessionEnd(cmd *cobra.Command, args []string) error {
	in := hooks.ReadInput(os.Stdin)
	if in.SessionID == "" {
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
		emit(hooks.Allow())
		return nil
	}
	defer db.Close()

	if _, err := db.IncrementCounter(in.SessionID, "session_end"); err != nil {
		hookWarn("counter: %v", err)
	}

	if n, err := db.ReleaseSessionPorts(in.SessionID); err != nil {
		hookWarn("releasing ports: %v", err)
	} else if n > 0 {
		hookWarn("released %d port lease(s)", n)
	}

	// Contexts for sub-agents that never completed are stale once the
	// session ends; collect them so the store does not grow unbounded.
	if n, err := db.DeleteSessionContexts(in.SessionID); err != nil {
		hookWarn("collecting task contexts: %v", err)
	} else if n > 0 {
		hookWarn("collected %d stale task context(s)", n)
	}

	emit(prNote(in.CWD))
	return nil
}

// prNote reports open PR check status for the session's repo, best effort.
func prNote(dir string) *hooks.Output {
	if dir == "" {
		return hooks.Allow()
	}
	runner := gitops.ExecRunner{}
	if !gitops.IsRepo(runner, dir) {
		return hooks.Allow()
	}

	ctx, cancel := context.WithTimeout(context.Background(), prNoteTimeout)
	defer cancel()

	statuses, err := gitops.PollPRStatuses(ctx, runner, dir)
	if err != nil || len(statuses) == 0 {
		return hooks.Allow()
	}

	text := ""
	for _, s := range statuses {
		text += fmt.Sprintf("PR #%d (%s): checks %s\n", s.Number, s.Title, s.Checks)
	}
	return hooks.AddContext("SessionEnd", text)
}
