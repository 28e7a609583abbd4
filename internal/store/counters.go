package store

import "database/sql"

// IncrementCounter adds one to a named per-session counter and returns the
// new value. The counter is created at 1 when absent.
func (db *DB) IncrementCounter(sessionID, name string) (int64, error) {
	row := db.conn.QueryRow(
		`INSERT INTO session_counters (session_id, name, value)
		 VALUES (?, ?, 1)
		 ON CONFLICT(session_id, name) DO UPDATE SET value = value + 1
		 RETURNING value`,
		sessionID, name,
	)
	var value int64
	if err := row.Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}

// GetCounter returns the value of a named per-session counter, zero when the
// counter does not exist.
func (db *DB) GetCounter(sessionID, name string) (int64, error) {
	row := db.conn.QueryRow(
		"SELECT value FROM session_counters WHERE session_id = ? AND name = ?",
		sessionID, name,
	)
	var value int64
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return value, nil
}

// DeleteSessionCounters removes every counter recorded for a session.
func (db *DB) DeleteSessionCounters(sessionID string) error {
	_, err := db.conn.Exec("DELETE FROM session_counters WHERE session_id = ?", sessionID)
	return err
}
