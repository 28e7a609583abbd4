package store

import (
	"database/sql"
	"time"
)

// PutTaskContext inserts or replaces the task context for a tool invocation.
func (db *DB) PutTaskContext(ctx TaskCallContext) error {
	_, err := db.conn.Exec(
		`INSERT INTO task_contexts (tool_use_id, agent_type, session_id, created_at, prompt)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(tool_use_id) DO UPDATE SET
			agent_type = excluded.agent_type,
			session_id = excluded.session_id,
			created_at = excluded.created_at,
			prompt     = excluded.prompt`,
		ctx.ToolUseID, ctx.AgentType, ctx.SessionID,
		ctx.Timestamp.UTC().Format(time.RFC3339), ctx.Prompt,
	)
	return err
}

// GetTaskContext returns the task context for a tool invocation, or nil if
// none is stored.
func (db *DB) GetTaskContext(toolUseID string) (*TaskCallContext, error) {
	row := db.conn.QueryRow(
		"SELECT tool_use_id, agent_type, session_id, created_at, prompt FROM task_contexts WHERE tool_use_id = ?",
		toolUseID,
	)
	return scanTaskContext(row)
}

// DeleteTaskContext removes the task context for a tool invocation.
// Deleting an absent key is a no-op.
func (db *DB) DeleteTaskContext(toolUseID string) error {
	_, err := db.conn.Exec("DELETE FROM task_contexts WHERE tool_use_id = ?", toolUseID)
	return err
}

// TakeTaskContext reads and deletes the task context for a tool invocation in
// one transaction. The second Take for the same key returns nil: the handoff
// is consumed at most once even when two processes race on it.
func (db *DB) TakeTaskContext(toolUseID string) (*TaskCallContext, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRow(
		"SELECT tool_use_id, agent_type, session_id, created_at, prompt FROM task_contexts WHERE tool_use_id = ?",
		toolUseID,
	)
	ctx, err := scanTaskContext(row)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		return nil, tx.Commit()
	}

	if _, err := tx.Exec("DELETE FROM task_contexts WHERE tool_use_id = ?", toolUseID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ctx, nil
}

// DeleteSessionContexts removes every task context recorded by a session.
// Used by the session-end hook to garbage-collect contexts whose sub-agents
// never completed.
func (db *DB) DeleteSessionContexts(sessionID string) (int64, error) {
	res, err := db.conn.Exec("DELETE FROM task_contexts WHERE session_id = ?", sessionID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanTaskContext(row *sql.Row) (*TaskCallContext, error) {
	var ctx TaskCallContext
	var createdAt string
	err := row.Scan(&ctx.ToolUseID, &ctx.AgentType, &ctx.SessionID, &createdAt, &ctx.Prompt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ctx.Timestamp, _ = time.Parse(time.RFC3339, createdAt)
	return &ctx, nil
}
