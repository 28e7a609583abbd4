package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestTaskContextRoundTrip(t *testing.T) {
	db := openTestDB(t)

	ctx := TaskCallContext{
		ToolUseID: "toolu_abc",
		AgentType: "ui-developer",
		SessionID: "sess-1",
		Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Prompt:    "add a login button",
	}
	require.NoError(t, db.PutTaskContext(ctx))

	got, err := db.GetTaskContext("toolu_abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ctx, *got)

	require.NoError(t, db.DeleteTaskContext("toolu_abc"))
	got, err = db.GetTaskContext("toolu_abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTakeTaskContext_AtMostOnce(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.PutTaskContext(TaskCallContext{
		ToolUseID: "toolu_once",
		AgentType: "Explore",
		SessionID: "sess-1",
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Prompt:    "look around",
	}))

	first, err := db.TakeTaskContext("toolu_once")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "look around", first.Prompt)

	second, err := db.TakeTaskContext("toolu_once")
	require.NoError(t, err)
	assert.Nil(t, second, "second take must find nothing")
}

func TestPutTaskContext_Upsert(t *testing.T) {
	db := openTestDB(t)

	base := TaskCallContext{
		ToolUseID: "toolu_up",
		AgentType: "Explore",
		SessionID: "sess-1",
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Prompt:    "first",
	}
	require.NoError(t, db.PutTaskContext(base))
	base.Prompt = "second"
	require.NoError(t, db.PutTaskContext(base))

	got, err := db.GetTaskContext("toolu_up")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Prompt)
}

func TestDeleteTaskContext_AbsentKeyIsNoop(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, db.DeleteTaskContext("never-stored"))
}

func TestDeleteSessionContexts(t *testing.T) {
	db := openTestDB(t)

	for _, id := range []string{"toolu_1", "toolu_2"} {
		require.NoError(t, db.PutTaskContext(TaskCallContext{
			ToolUseID: id, AgentType: "x", SessionID: "sess-gc",
			Timestamp: time.Now().UTC(), Prompt: "p",
		}))
	}
	require.NoError(t, db.PutTaskContext(TaskCallContext{
		ToolUseID: "toolu_3", AgentType: "x", SessionID: "sess-other",
		Timestamp: time.Now().UTC(), Prompt: "p",
	}))

	n, err := db.DeleteSessionContexts("sess-gc")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	got, err := db.GetTaskContext("toolu_3")
	require.NoError(t, err)
	assert.NotNil(t, got, "other session's context must survive")
}

func TestCounters(t *testing.T) {
	db := openTestDB(t)

	v, err := db.IncrementCounter("sess-1", "session_end")
	require.NoError(t, err)
	assert.EqualValues(t, 1, v)

	v, err = db.IncrementCounter("sess-1", "session_end")
	require.NoError(t, err)
	assert.EqualValues(t, 2, v)

	v, err = db.GetCounter("sess-1", "session_end")
	require.NoError(t, err)
	assert.EqualValues(t, 2, v)

	v, err = db.GetCounter("sess-1", "missing")
	require.NoError(t, err)
	assert.EqualValues(t, 0, v)

	require.NoError(t, db.DeleteSessionCounters("sess-1"))
	v, err = db.GetCounter("sess-1", "session_end")
	require.NoError(t, err)
	assert.EqualValues(t, 0, v)
}

func TestPortLeases(t *testing.T) {
	db := openTestDB(t)

	lease := PortLease{
		Port:      3000,
		LeaseID:   "lease-1",
		Service:   "vite",
		SessionID: "sess-1",
		LeasedAt:  time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, db.InsertLease(lease))

	// Same port cannot be leased twice.
	err := db.InsertLease(PortLease{Port: 3000, LeaseID: "lease-2", Service: "next", SessionID: "sess-2", LeasedAt: time.Now()})
	assert.Error(t, err)

	got, err := db.GetLease(3000)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "vite", got.Service)

	free, err := db.GetLease(3001)
	require.NoError(t, err)
	assert.Nil(t, free)

	require.NoError(t, db.InsertLease(PortLease{Port: 3001, LeaseID: "lease-3", Service: "storybook", SessionID: "sess-1", LeasedAt: time.Now().UTC()}))

	leases, err := db.ListLeases()
	require.NoError(t, err)
	require.Len(t, leases, 2)
	assert.Equal(t, 3000, leases[0].Port)

	n, err := db.ReleaseSessionPorts("sess-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	require.NoError(t, db.ReleasePort(3000)) // already free, no-op
}
