// Package transcript reads and models Claude Code session transcript files.
// A transcript is one append-only JSONL log for a single session or for a
// spawned sub-agent run (a "sidechain").
package transcript

import (
	"encoding/json"
	"time"
)

// MessageType is the discriminator tag of a JSONL line.
type MessageType string

const (
	MessageTypeUser      MessageType = "user"
	MessageTypeAssistant MessageType = "assistant"
	MessageTypeSystem    MessageType = "system"
)

// Message is one parsed JSONL line. Lines whose type tag is anything other
// than user/assistant/system (summaries, file-history snapshots, progress
// bookkeeping) are skipped by the reader and never appear here.
type Message struct {
	Type         MessageType     `json:"type"`
	UUID         string          `json:"uuid"`
	ParentUUID   *string         `json:"parentUuid"`
	Timestamp    string          `json:"timestamp"`
	SessionID    string          `json:"sessionId"`
	IsSidechain  bool            `json:"isSidechain"`
	CWD          string          `json:"cwd"`
	AgentID      string          `json:"agentId"`
	SubagentType string          `json:"subagentType"`
	GitBranch    string          `json:"gitBranch"`
	Version      string          `json:"version"`
	Message      json.RawMessage `json:"message"`
}

// Time returns the parsed message timestamp, or the zero time when the
// timestamp is absent or unparseable.
func (m *Message) Time() time.Time {
	return ParseTimestamp(m.Timestamp)
}

// RoleMessage is the inner message payload of a user or assistant line.
type RoleMessage struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock is a single content item: tool_use, tool_result, or text.
type ContentBlock struct {
	Type      string          `json:"type"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input"`
	ToolUseID string          `json:"tool_use_id"`
	Content   json.RawMessage `json:"content"`
	IsError   bool            `json:"is_error"`
	Text      string          `json:"text"`
}

// ToolUse is a decoded tool invocation: the block's globally unique id, the
// tool name, its typed input, and the timestamp of the carrying message.
type ToolUse struct {
	ID        string
	Name      string
	Input     ToolInput
	Timestamp time.Time
}

// ToolResultRef is a decoded tool result paired back to its invocation.
type ToolResultRef struct {
	ToolUseID string
	Content   json.RawMessage
	Text      string
	IsError   bool
	Timestamp time.Time
}

// Transcript is an ordered list of messages read from one JSONL file plus
// the identity derived from its first valid message.
type Transcript struct {
	Path     string
	Messages []Message

	SessionID    string
	AgentID      string
	IsSidechain  bool
	SubagentType string
}

// IsMainSession reports whether this transcript belongs to a top-level
// session rather than a spawned sub-agent.
func (t *Transcript) IsMainSession() bool {
	return !t.IsSidechain
}

// Agent returns the transcript's agent id, empty for main sessions.
func (t *Transcript) Agent() string {
	return t.AgentID
}

// DeclaredSubagentType returns the sub-agent category the transcript declares
// for itself, empty when none was recorded.
func (t *Transcript) DeclaredSubagentType() string {
	return t.SubagentType
}

// StartTime returns the timestamp of the first message, or the zero time for
// a transcript whose first message carries no parseable timestamp.
func (t *Transcript) StartTime() time.Time {
	if len(t.Messages) == 0 {
		return time.Time{}
	}
	return t.Messages[0].Time()
}

// ToolUses returns every decoded tool invocation in file order.
func (t *Transcript) ToolUses() []ToolUse {
	var uses []ToolUse
	for i := range t.Messages {
		m := &t.Messages[i]
		if m.Type != MessageTypeAssistant || m.Message == nil {
			continue
		}
		var rm RoleMessage
		if err := json.Unmarshal(m.Message, &rm); err != nil {
			continue
		}
		ts := m.Time()
		for _, block := range rm.Content {
			if block.Type != "tool_use" {
				continue
			}
			uses = append(uses, ToolUse{
				ID:        block.ID,
				Name:      block.Name,
				Input:     DecodeToolInput(block.Name, block.Input),
				Timestamp: ts,
			})
		}
	}
	return uses
}

// ToolResults returns every decoded tool result in file order.
func (t *Transcript) ToolResults() []ToolResultRef {
	var results []ToolResultRef
	for i := range t.Messages {
		m := &t.Messages[i]
		if m.Type != MessageTypeUser || m.Message == nil {
			continue
		}
		var rm RoleMessage
		if err := json.Unmarshal(m.Message, &rm); err != nil {
			continue
		}
		ts := m.Time()
		for _, block := range rm.Content {
			if block.Type != "tool_result" {
				continue
			}
			results = append(results, ToolResultRef{
				ToolUseID: block.ToolUseID,
				Content:   block.Content,
				Text:      block.Text,
				IsError:   block.IsError,
				Timestamp: ts,
			})
		}
	}
	return results
}

// ParseTimestamp parses an ISO 8601 timestamp string. It tries RFC3339Nano,
// RFC3339, and a plain datetime format without timezone. Returns the zero time
// if the string is empty or cannot be parsed by any supported format.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			// Fallback for datetime strings without a timezone suffix.
			t, err = time.Parse("2006-01-02T15:04:05", s)
			if err != nil {
				return time.Time{}
			}
		}
	}
	return t
}
