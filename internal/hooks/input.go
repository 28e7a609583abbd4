// Package hooks models the JSON protocol between the Claude Code host and a
// hook process: one payload object on stdin, an optional response object on
// stdout. A hook that cannot make sense of its input degrades to a no-op
// rather than blocking the host action.
package hooks

import (
	"encoding/json"
	"io"
)

// Input is the hook payload the host writes to stdin. Fields not relevant to
// a given lifecycle event are simply absent.
type Input struct {
	SessionID           string          `json:"session_id"`
	TranscriptPath      string          `json:"transcript_path"`
	CWD                 string          `json:"cwd"`
	HookEventName       string          `json:"hook_event_name"`
	ToolName            string          `json:"tool_name"`
	ToolUseID           string          `json:"tool_use_id"`
	ToolInput           json.RawMessage `json:"tool_input"`
	ToolResponse        json.RawMessage `json:"tool_response"`
	AgentID             string          `json:"agent_id"`
	AgentTranscriptPath string          `json:"agent_transcript_path"`
	StopHookActive      bool            `json:"stop_hook_active"`
}

// ReadInput parses a hook payload. An unreadable or malformed payload yields
// an empty Input, never an error: a broken hook must not break the host.
func ReadInput(r io.Reader) *Input {
	var in Input
	data, err := io.ReadAll(r)
	if err != nil {
		return &in
	}
	_ = json.Unmarshal(data, &in)
	return &in
}
