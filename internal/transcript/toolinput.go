package transcript

import "encoding/json"

// ToolInput is the decoded input of a tool invocation. Each known tool name
// maps to one concrete payload shape; anything else decodes to UnknownInput
// so that new tool names never break parsing.
type ToolInput interface {
	toolInput()
}

// WriteInput is the payload of a Write (create or full-overwrite) invocation.
type WriteInput struct {
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

// EditInput is the payload of an Edit (targeted in-place replacement) invocation.
type EditInput struct {
	FilePath   string `json:"file_path"`
	OldString  string `json:"old_string"`
	NewString  string `json:"new_string"`
	ReplaceAll bool   `json:"replace_all"`
}

// MultiEditInput is the payload of a MultiEdit invocation: several targeted
// replacements applied to one file.
type MultiEditInput struct {
	FilePath string `json:"file_path"`
	Edits    []struct {
		OldString  string `json:"old_string"`
		NewString  string `json:"new_string"`
		ReplaceAll bool   `json:"replace_all"`
	} `json:"edits"`
}

// BashInput is the payload of a shell-execution invocation.
type BashInput struct {
	Command     string `json:"command"`
	Description string `json:"description"`
	Timeout     int    `json:"timeout"`
}

// TaskInput is the payload of a Task (spawn sub-agent) invocation.
type TaskInput struct {
	SubagentType    string `json:"subagent_type"`
	Description     string `json:"description"`
	Prompt          string `json:"prompt"`
	RunInBackground bool   `json:"run_in_background"`
}

// UnknownInput carries the raw input of a tool this package has no concrete
// shape for.
type UnknownInput struct {
	Name string
	Raw  json.RawMessage
}

func (WriteInput) toolInput()     {}
func (EditInput) toolInput()      {}
func (MultiEditInput) toolInput() {}
func (BashInput) toolInput()      {}
func (TaskInput) toolInput()      {}
func (UnknownInput) toolInput()   {}

// Tool names recognized by DecodeToolInput.
const (
	ToolWrite     = "Write"
	ToolEdit      = "Edit"
	ToolMultiEdit = "MultiEdit"
	ToolBash      = "Bash"
	ToolTask      = "Task"
)

// DecodeToolInput decodes a tool invocation's raw input into its typed shape.
// Decoding never fails: a malformed payload for a known tool, or any payload
// for an unrecognized tool, yields UnknownInput.
func DecodeToolInput(name string, raw json.RawMessage) ToolInput {
	switch name {
	case ToolWrite:
		var in WriteInput
		if err := json.Unmarshal(raw, &in); err == nil {
			return in
		}
	case ToolEdit:
		var in EditInput
		if err := json.Unmarshal(raw, &in); err == nil {
			return in
		}
	case ToolMultiEdit:
		var in MultiEditInput
		if err := json.Unmarshal(raw, &in); err == nil {
			return in
		}
	case ToolBash:
		var in BashInput
		if err := json.Unmarshal(raw, &in); err == nil {
			return in
		}
	case ToolTask:
		var in TaskInput
		if err := json.Unmarshal(raw, &in); err == nil {
			return in
		}
	}
	return UnknownInput{Name: name, Raw: raw}
}
