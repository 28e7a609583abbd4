// Package taskmatch correlates a sub-agent transcript with the Task
// invocation in its parent transcript that spawned it. There is no foreign
// key between the two logs, so the matcher combines agent-id linkage, when
// the parent recorded one, with timestamp proximity when it did not.
package taskmatch

import (
	"encoding/json"
	"time"

	"github.com/constellos/agenthooks/internal/transcript"
)

// MatchedCall identifies the Task invocation that spawned a sub-agent.
type MatchedCall struct {
	ToolUseID    string
	SubagentType string
	Prompt       string
	Description  string
	Timestamp    time.Time
}

// candidate is one Task invocation observed in the parent transcript.
type candidate struct {
	id        string
	agentType string
	prompt    string
	desc      string
	ts        time.Time
}

// resultAgentRef is the slice of a Task tool_result payload the matcher cares
// about: the agent id the host reported for the completed sub-agent.
type resultAgentRef struct {
	AgentID string `json:"agentId"`
}

// Match searches the parent transcript for the Task invocation that spawned
// the sub-agent transcript. An exact agent-id linkage recorded on the parent
// side wins outright. Otherwise the candidate whose timestamp is closest to,
// and not later than, the sub-transcript's start is chosen, within the given
// tolerance window; ties go to the latest such timestamp. Returns false when
// no candidate qualifies; callers treat that as "context unknown", not as
// an error.
func Match(parent, sub *transcript.Transcript, window time.Duration) (*MatchedCall, bool) {
	candidates, linkage := collectTaskCalls(parent)
	if len(candidates) == 0 {
		return nil, false
	}

	// Exact agent-id linkage is authoritative.
	if agentID := sub.Agent(); agentID != "" {
		if toolUseID, ok := linkage[agentID]; ok {
			for _, c := range candidates {
				if c.id == toolUseID {
					return matchedFrom(c), true
				}
			}
		}
	}

	// Fall back to timestamp proximity among same-typed candidates.
	start := sub.StartTime()
	if start.IsZero() {
		return nil, false
	}

	declared := sub.DeclaredSubagentType()
	var best *candidate
	for i := range candidates {
		c := &candidates[i]
		if declared != "" && c.agentType != declared {
			continue
		}
		if c.ts.IsZero() || c.ts.After(start) {
			continue
		}
		if start.Sub(c.ts) > window {
			continue
		}
		// Last-spawned-before-start wins.
		if best == nil || c.ts.After(best.ts) {
			best = c
		}
	}
	if best == nil {
		return nil, false
	}
	return matchedFrom(*best), true
}

// collectTaskCalls walks the parent transcript once, gathering every Task
// invocation and the agentId -> tool_use_id linkage recoverable from the
// parent-side tool results.
func collectTaskCalls(parent *transcript.Transcript) ([]candidate, map[string]string) {
	var candidates []candidate
	taskIDs := make(map[string]bool)

	for _, use := range parent.ToolUses() {
		in, ok := use.Input.(transcript.TaskInput)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{
			id:        use.ID,
			agentType: in.SubagentType,
			prompt:    in.Prompt,
			desc:      in.Description,
			ts:        use.Timestamp,
		})
		taskIDs[use.ID] = true
	}

	linkage := make(map[string]string)
	for _, res := range parent.ToolResults() {
		if !taskIDs[res.ToolUseID] {
			continue
		}
		if agentID := agentIDFromResult(res); agentID != "" {
			linkage[agentID] = res.ToolUseID
		}
	}
	return candidates, linkage
}

// agentIDFromResult extracts the reported agent id from a Task tool_result.
// The content can be a bare object, or an array of content blocks whose
// entries may carry the id; absence is normal for mid-flight sub-agents.
func agentIDFromResult(res transcript.ToolResultRef) string {
	if res.Content == nil {
		return ""
	}

	var ref resultAgentRef
	if err := json.Unmarshal(res.Content, &ref); err == nil && ref.AgentID != "" {
		return ref.AgentID
	}

	var refs []resultAgentRef
	if err := json.Unmarshal(res.Content, &refs); err == nil {
		for _, r := range refs {
			if r.AgentID != "" {
				return r.AgentID
			}
		}
	}
	return ""
}

func matchedFrom(c candidate) *MatchedCall {
	return &MatchedCall{
		ToolUseID:    c.id,
		SubagentType: c.agentType,
		Prompt:       c.prompt,
		Description:  c.desc,
		Timestamp:    c.ts,
	}
}
