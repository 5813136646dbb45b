package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leadflow/leadflow_end/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadCache(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("empty cache is invalid", func(t *testing.T) {
		cache := NewLeadCache(newFakeLeadStore())
		_, ok := cache.Snapshot()
		assert.False(t, ok)
	})

	t.Run("refresh loads all leads", func(t *testing.T) {
		store := newFakeLeadStore(
			leadWith(models.LeadStatusNew, now),
			leadWith(models.LeadStatusEmailSent, now),
		)
		cache := NewLeadCache(store)

		require.NoError(t, cache.Refresh(context.Background()))

		snapshot, ok := cache.Snapshot()
		require.True(t, ok)
		assert.Len(t, snapshot, 2)
	})

	t.Run("snapshot returns a copy", func(t *testing.T) {
		store := newFakeLeadStore(leadWith(models.LeadStatusNew, now))
		cache := NewLeadCache(store)
		require.NoError(t, cache.Refresh(context.Background()))

		snapshot, _ := cache.Snapshot()
		snapshot[0].CompanyName = "mutated"

		again, _ := cache.Snapshot()
		assert.Equal(t, "Acme Corp", again[0].CompanyName)
	})

	t.Run("invalidate drops the snapshot", func(t *testing.T) {
		cache := NewLeadCache(newFakeLeadStore(leadWith(models.LeadStatusNew, now)))
		require.NoError(t, cache.Refresh(context.Background()))

		cache.Invalidate()
		_, ok := cache.Snapshot()
		assert.False(t, ok)
	})

	t.Run("failed refresh invalidates", func(t *testing.T) {
		store := newFakeLeadStore(leadWith(models.LeadStatusNew, now))
		cache := NewLeadCache(store)
		require.NoError(t, cache.Refresh(context.Background()))

		store.mu.Lock()
		store.listErr = errors.New("no reachable servers")
		store.mu.Unlock()

		require.Error(t, cache.Refresh(context.Background()))
		_, ok := cache.Snapshot()
		assert.False(t, ok)
	})
}
