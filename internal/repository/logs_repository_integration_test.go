//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/blend-service/internal/circuitbreaker"
)

func TestLogsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newTestDB(t)
	t.Cleanup(func() { _ = db.Close(ctx) })
	require.NoError(t, db.SetLogsTTL(ctx, 30*24*time.Hour))

	repo := NewLogsRepository(db)
	base := time.Now().Add(-time.Hour).Truncate(time.Millisecond)

	require.NoError(t, repo.Create(ctx, &LogEntryDocument{
		Timestamp:  base,
		Level:      "info",
		Message:    "HTTP request",
		RequestID:  "req-1",
		SessionID:  "s-1",
		Method:     "POST",
		Path:       "/api/v1/formulations",
		StatusCode: 201,
	}))
	require.NoError(t, repo.CreateMany(ctx, []*LogEntryDocument{
		{Timestamp: base.Add(time.Minute), Level: "info", Message: "Session created", SessionID: "s-1", ActionType: "session_create", Subject: "lab-user"},
		{Timestamp: base.Add(2 * time.Minute), Level: "info", Message: "Entry set", SessionID: "s-1", ActionType: "entry_set", Fields: map[string]interface{}{"slot": 3}},
		{Timestamp: base.Add(3 * time.Minute), Level: "warn", Message: "Estimate rejected", SessionID: "s-1", ActionType: "entry_estimate"},
		{Timestamp: base.Add(4 * time.Minute), Level: "info", Message: "Session created", SessionID: "s-2", ActionType: "session_create"},
	}))

	t.Run("session history is newest first", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{SessionID: "s-1"})
		require.NoError(t, err)
		require.Len(t, entries, 4)
		assert.Equal(t, "entry_estimate", entries[0].ActionType)
		assert.Equal(t, "req-1", entries[3].RequestID)
	})

	t.Run("audit only skips request records", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{SessionID: "s-1", AuditOnly: true})
		require.NoError(t, err)
		assert.Len(t, entries, 3)
		for _, e := range entries {
			assert.NotEmpty(t, e.ActionType)
		}
	})

	t.Run("fields round trip", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{ActionType: "entry_set"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.EqualValues(t, 3, entries[0].Fields["slot"])
	})

	t.Run("limit and skip", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{SessionID: "s-1", Limit: 1, Skip: 1})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "entry_set", entries[0].ActionType)
	})

	t.Run("count by subject and window", func(t *testing.T) {
		n, err := repo.Count(ctx, LogQueryOptions{Subject: "lab-user"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		from := base.Add(90 * time.Second)
		n, err = repo.Count(ctx, LogQueryOptions{StartTime: &from})
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)
	})

	t.Run("no match returns an empty slice", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{SessionID: "missing"})
		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})
}

func TestLogsRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newTestDB(t)
	t.Cleanup(func() { _ = db.Close(ctx) })

	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	wrapped := NewLogsRepositoryWithCircuitBreaker(NewLogsRepository(db), cb)

	require.NoError(t, wrapped.Create(ctx, &LogEntryDocument{Level: "info", Message: "Session reset", SessionID: "s-9", ActionType: "session_reset"}))

	entries, err := wrapped.Query(ctx, LogQueryOptions{SessionID: "s-9", AuditOnly: true})
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	stats := cb.GetStats()
	assert.Equal(t, "closed", stats.State)
	assert.True(t, stats.IsHealthy)
}
