// Package store provides SQLite-backed shared state for agenthooks: the
// task-context side channel, per-session counters, and port leases.
package store

import "time"

// TaskCallContext is the ephemeral spawn-time context of a Task invocation,
// written by the hook process that observed the spawn and consumed at most
// once by the later process analyzing the sub-agent's transcript.
type TaskCallContext struct {
	ToolUseID string    `json:"tool_use_id"`
	AgentType string    `json:"agent_type"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
	Prompt    string    `json:"prompt"`
}

// PortLease records one allocated development-service port.
type PortLease struct {
	Port      int       `json:"port"`
	LeaseID   string    `json:"lease_id"`
	Service   string    `json:"service"`
	SessionID string    `json:"session_id"`
	LeasedAt  time.Time `json:"leased_at"`
}
