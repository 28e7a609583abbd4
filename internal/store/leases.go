package store

import (
	"database/sql"
	"time"
)

// InsertLease records a port lease. Fails if the port is already leased.
func (db *DB) InsertLease(lease PortLease) error {
	_, err := db.conn.Exec(
		`INSERT INTO port_leases (port, lease_id, service, session_id, leased_at)
		 VALUES (?, ?, ?, ?, ?)`,
		lease.Port, lease.LeaseID, lease.Service, lease.SessionID,
		lease.LeasedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// GetLease returns the lease holding a port, or nil when the port is free.
func (db *DB) GetLease(port int) (*PortLease, error) {
	row := db.conn.QueryRow(
		"SELECT port, lease_id, service, session_id, leased_at FROM port_leases WHERE port = ?",
		port,
	)
	return scanLease(row)
}

// ReleasePort frees a leased port. Releasing a free port is a no-op.
func (db *DB) ReleasePort(port int) error {
	_, err := db.conn.Exec("DELETE FROM port_leases WHERE port = ?", port)
	return err
}

// ReleaseSessionPorts frees every port leased by a session and returns how
// many were released.
func (db *DB) ReleaseSessionPorts(sessionID string) (int64, error) {
	res, err := db.conn.Exec("DELETE FROM port_leases WHERE session_id = ?", sessionID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListLeases returns all current port leases ordered by port number.
func (db *DB) ListLeases() ([]PortLease, error) {
	rows, err := db.conn.Query(
		"SELECT port, lease_id, service, session_id, leased_at FROM port_leases ORDER BY port",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []PortLease
	for rows.Next() {
		var l PortLease
		var leasedAt string
		if err := rows.Scan(&l.Port, &l.LeaseID, &l.Service, &l.SessionID, &leasedAt); err != nil {
			return nil, err
		}
		l.LeasedAt, _ = time.Parse(time.RFC3339, leasedAt)
		leases = append(leases, l)
	}
	return leases, rows.Err()
}

func scanLease(row *sql.Row) (*PortLease, error) {
	var l PortLease
	var leasedAt string
	err := row.Scan(&l.Port, &l.LeaseID, &l.Service, &l.SessionID, &leasedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	l.LeasedAt, _ = time.Parse(time.RFC3339, leasedAt)
	return &l, nil
}
