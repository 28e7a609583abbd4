// Package taskedits composes the transcript reader, task-call matcher,
// side-channel store, and file-operation extractor into one result record:
// which Task invocation spawned a sub-agent, what it was told to do, and
// which files it touched.
package taskedits

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/constellos/agenthooks/internal/fileops"
	"github.com/constellos/agenthooks/internal/store"
	"github.com/constellos/agenthooks/internal/taskmatch"
	"github.com/constellos/agenthooks/internal/transcript"
)

// ErrInvalidAgentTranscript is returned when the given path does not name a
// sub-agent transcript.
var ErrInvalidAgentTranscript = errors.New("not a sub-agent transcript")

// ErrParentNotFound is returned when the parent session transcript derived
// from the sub-agent transcript does not exist.
var ErrParentNotFound = errors.New("parent transcript not found")

// UnknownSubagentType is reported when no spawning invocation could be
// correlated and the transcript declares no type of its own.
const UnknownSubagentType = "unknown"

// agentFilePrefix marks a transcript filename as a sub-agent log.
const agentFilePrefix = "agent-"

// ContextStore is the slice of the side-channel store the assembler needs:
// the read-and-delete half of the once-only handoff.
type ContextStore interface {
	TakeTaskContext(toolUseID string) (*store.TaskCallContext, error)
}

// Options configures Assemble.
type Options struct {
	// Store consumes spawn-time context recorded by the hook that observed
	// the Task invocation. Nil disables the side channel.
	Store ContextStore

	// MatchWindow bounds how far before the sub-agent's first message a
	// spawning invocation may lie and still be a correlation candidate.
	MatchWindow time.Duration
}

// Result is the immutable summary of a sub-agent run.
type Result struct {
	SessionID           string   `json:"session_id"`
	AgentSessionID      string   `json:"agent_session_id"`
	TranscriptPath      string   `json:"transcript_path"`
	AgentTranscriptPath string   `json:"agent_transcript_path"`
	SubagentType        string   `json:"subagent_type"`
	AgentPrompt         string   `json:"agent_prompt"`
	AgentDefinitionFile string   `json:"agent_definition_file,omitempty"`
	AgentNewFiles       []string `json:"agent_new_files"`
	AgentDeletedFiles   []string `json:"agent_deleted_files"`
	AgentEditedFiles    []string `json:"agent_edited_files"`
}

// Assemble reads the sub-agent transcript at subPath, correlates it with its
// parent session transcript, consumes any stored spawn context, and extracts
// the run's file operations. A failed correlation is not an error: the
// result degrades to an empty prompt and an unknown subagent type.
func Assemble(subPath string, opts Options) (*Result, error) {
	if !IsAgentTranscriptPath(subPath) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAgentTranscript, subPath)
	}

	sub, err := transcript.Read(subPath)
	if err != nil {
		return nil, err
	}

	parentPath := ParentTranscriptPath(subPath, sub.SessionID)
	parent, err := transcript.Read(parentPath)
	if err != nil {
		if errors.Is(err, transcript.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrParentNotFound, parentPath)
		}
		return nil, err
	}

	res := &Result{
		SessionID:           sub.SessionID,
		AgentSessionID:      sub.Agent(),
		TranscriptPath:      parentPath,
		AgentTranscriptPath: subPath,
		AgentNewFiles:       []string{},
		AgentDeletedFiles:   []string{},
		AgentEditedFiles:    []string{},
	}

	if matched, ok := taskmatch.Match(parent, sub, opts.MatchWindow); ok {
		res.AgentPrompt = matched.Prompt
		res.SubagentType = matched.SubagentType
		if res.SubagentType == "" {
			res.SubagentType = sub.DeclaredSubagentType()
		}
		// The stored context may hold richer text than the invocation's own
		// input; it wins when present. Taking it also deletes it, so a rerun
		// falls back to the invocation prompt.
		if opts.Store != nil {
			if ctx, err := opts.Store.TakeTaskContext(matched.ToolUseID); err == nil && ctx != nil {
				if ctx.Prompt != "" {
					res.AgentPrompt = ctx.Prompt
				}
				if ctx.AgentType != "" {
					res.SubagentType = ctx.AgentType
				}
			}
		}
	}
	if res.SubagentType == "" {
		res.SubagentType = UnknownSubagentType
	}

	changes := fileops.Extract(sub)
	if changes.New != nil {
		res.AgentNewFiles = changes.New
	}
	if changes.Edited != nil {
		res.AgentEditedFiles = changes.Edited
	}
	if changes.Deleted != nil {
		res.AgentDeletedFiles = changes.Deleted
	}

	res.AgentDefinitionFile = resolveAgentDefinition(sub, res.SubagentType)

	return res, nil
}

// IsAgentTranscriptPath reports whether a transcript path names a sub-agent
// log by convention (basename "agent-<id>.jsonl").
func IsAgentTranscriptPath(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, agentFilePrefix) && strings.HasSuffix(base, ".jsonl")
}

// ParentTranscriptPath derives the parent session transcript path from a
// sub-agent transcript path: the sibling "<sessionID>.jsonl" in the same
// project directory.
func ParentTranscriptPath(subPath, sessionID string) string {
	return filepath.Join(filepath.Dir(subPath), sessionID+".jsonl")
}

// resolveAgentDefinition looks for the on-disk agent definition file the
// subagent type maps to by convention: .claude/agents/<type>.md under the
// working directory the transcript recorded. Missing is not an error.
func resolveAgentDefinition(sub *transcript.Transcript, subagentType string) string {
	if subagentType == "" || subagentType == UnknownSubagentType {
		return ""
	}
	if len(sub.Messages) == 0 || sub.Messages[0].CWD == "" {
		return ""
	}
	path := filepath.Join(sub.Messages[0].CWD, ".claude", "agents", subagentType+".md")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
