package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/constellos/agenthooks/internal/config"
	"github.com/constellos/agenthooks/internal/hooks"
	"github.com/constellos/agenthooks/internal/ports"
	"github.com/constellos/agenthooks/internal/store"
)

var preToolUseCmd = &cobra.Command{
	Use:   "pre-tool-use",
	Short: "PreToolUse hook: record sub-agent spawn context, guard leased ports",
	RunE:  runPreToolUse,
}

func init() {
	hookCmd.AddCommand(preToolUseCmd)
}

// taskSpawnInput is the slice of a Task tool_input this hook records.
type taskSpawnInput struct {
	SubagentType string `json:"subagent_type"`
	Prompt       string `json:"prompt"`
}

func runPreToolUse(cmd *cobra.Command, args []string) error {
	in := hooks.ReadInput(os.Stdin)

	cfg, err := loadConfig()
	if err != nil {
		hookWarn("%v", err)
		emit(hooks.Allow())
		return nil
	}

	switch in.ToolName {
	case "Task":
		recordSpawnContext(cfg.DBPath, in)
		emit(hooks.Allow())

	case "Bash":
		emit(guardLeasedPort(cfg, in))

	default:
		emit(hooks.Allow())
	}
	return nil
}

// recordSpawnContext is the producer half of the side channel: at the moment
// the parent session spawns a sub-agent, persist the literal prompt keyed by
// the spawning invocation's id. The process that later analyzes the
// sub-agent's transcript consumes it exactly once.
func recordSpawnContext(dbPath string, in *hooks.Input) {
	if in.ToolUseID == "" {
		hookWarn("Task spawn without tool_use_id, skipping context record")
		return
	}

	var spawn taskSpawnInput
	if err := json.Unmarshal(in.ToolInput, &spawn); err != nil {
		hookWarn("unreadable Task input: %v", err)
		return
	}

	db, err := store.Open(dbPath)
	if err != nil {
		hookWarn("opening store: %v", err)
		return
	}
	defer db.Close()

	err = db.PutTaskContext(store.TaskCallContext{
		ToolUseID: in.ToolUseID,
		AgentType: spawn.SubagentType,
		SessionID: in.SessionID,
		Timestamp: time.Now().UTC(),
		Prompt:    spawn.Prompt,
	})
	if err != nil {
		hookWarn("recording spawn context: %v", err)
	}
}

// guardLeasedPort blocks a dev-server launch that names a port another
// session holds a lease on. Anything it cannot parse is allowed.
func guardLeasedPort(cfg *config.Config, in *hooks.Input) *hooks.Output {
	var bash struct {
		Command string `json:"command"`
	}
	if err := json.Unmarshal(in.ToolInput, &bash); err != nil {
		return hooks.Allow()
	}

	port := parsePortFlag(bash.Command)
	if port == 0 {
		return hooks.Allow()
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		hookWarn("opening store: %v", err)
		return hooks.Allow()
	}
	defer db.Close()

	alloc := ports.NewAllocator(db, cfg.PortRange.Min, cfg.PortRange.Max)
	lease, err := alloc.Holder(port)
	if err != nil {
		return hooks.Allow()
	}
	return portDecision(lease, in.SessionID, port)
}

// portDecision allows a port its own session leased and blocks one held by
// another session.
func portDecision(lease *store.PortLease, sessionID string, port int) *hooks.Output {
	if lease == nil || lease.SessionID == sessionID {
		return hooks.Allow()
	}
	return hooks.Block(fmt.Sprintf(
		"port %d is leased to %s (session %s); run `agenthooks ports allocate` for a free port",
		port, lease.Service, lease.SessionID,
	))
}

// parsePortFlag extracts an explicit port from `--port N`, `--port=N`, or
// `-p N` in a command line. Returns 0 when no port is named.
func parsePortFlag(command string) int {
	fields := strings.Fields(command)
	for i, f := range fields {
		switch {
		case f == "--port" || f == "-p":
			if i+1 < len(fields) {
				if port, err := strconv.Atoi(fields[i+1]); err == nil {
					return port
				}
			}
		case strings.HasPrefix(f, "--port="):
			if port, err := strconv.Atoi(strings.TrimPrefix(f, "--port=")); err == nil {
				return port
			}
		}
	}
	return 0
}
