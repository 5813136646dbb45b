package service

import (
	"context"
	"testing"
	"time"

	"github.com/leadflow/leadflow_end/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyManualTransition(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	before := now.AddDate(0, 0, -2)

	t.Run("moves to a new status", func(t *testing.T) {
		store := newFakeLeadStore(leadWith(models.LeadStatusNew, before))
		lead := store.get(store.order[0])

		changed, err := ApplyManualTransition(context.Background(), store, lead, models.LeadStatusEmailSent, now)
		require.NoError(t, err)
		assert.True(t, changed)

		got := store.get(store.order[0])
		assert.Equal(t, models.LeadStatusEmailSent, got.Status)
		assert.Equal(t, now, got.UpdatedAt)
	})

	t.Run("skipping stages is allowed", func(t *testing.T) {
		store := newFakeLeadStore(leadWith(models.LeadStatusNew, before))
		lead := store.get(store.order[0])

		changed, err := ApplyManualTransition(context.Background(), store, lead, models.LeadStatusBooked, now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, models.LeadStatusBooked, store.get(store.order[0]).Status)
	})

	t.Run("moving backwards is allowed", func(t *testing.T) {
		store := newFakeLeadStore(leadWith(models.LeadStatusBooked, before))
		lead := store.get(store.order[0])

		changed, err := ApplyManualTransition(context.Background(), store, lead, models.LeadStatusEmailSent, now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, models.LeadStatusEmailSent, store.get(store.order[0]).Status)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		store := newFakeLeadStore(leadWith(models.LeadStatusEmailSent, before))
		lead := store.get(store.order[0])

		changed, err := ApplyManualTransition(context.Background(), store, lead, models.LeadStatusEmailSent, now)
		require.NoError(t, err)
		assert.False(t, changed)

		// updatedAt不能被刷新, 否则会干扰自动推进的停留时长
		assert.Equal(t, before, store.get(store.order[0]).UpdatedAt)
	})

	t.Run("unknown status is silently ignored", func(t *testing.T) {
		store := newFakeLeadStore(leadWith(models.LeadStatusEmailSent, before))
		lead := store.get(store.order[0])

		changed, err := ApplyManualTransition(context.Background(), store, lead, models.LeadStatus("archived"), now)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, models.LeadStatusEmailSent, store.get(store.order[0]).Status)
		assert.Equal(t, before, store.get(store.order[0]).UpdatedAt)
	})
}

func TestResolveDropTarget(t *testing.T) {
	statusOf := func(id string) (models.LeadStatus, bool) {
		if id == "card-1" {
			return models.LeadStatusFollowup1, true
		}
		return "", false
	}

	t.Run("dropping on a column", func(t *testing.T) {
		status, ok := ResolveDropTarget("booked", statusOf)
		require.True(t, ok)
		assert.Equal(t, models.LeadStatusBooked, status)
	})

	t.Run("dropping on a card resolves to its column", func(t *testing.T) {
		status, ok := ResolveDropTarget("card-1", statusOf)
		require.True(t, ok)
		assert.Equal(t, models.LeadStatusFollowup1, status)
	})

	t.Run("unknown target is invalid", func(t *testing.T) {
		_, ok := ResolveDropTarget("card-404", statusOf)
		assert.False(t, ok)
	})
}

func TestResolveStatusRequest(t *testing.T) {
	statusOf := func(id string) (models.LeadStatus, bool) {
		if id == "card-1" {
			return models.LeadStatusFollowup1, true
		}
		return "", false
	}

	t.Run("direct status edit", func(t *testing.T) {
		status, ok := ResolveStatusRequest(models.LeadStatusBooked, "", statusOf)
		require.True(t, ok)
		assert.Equal(t, models.LeadStatusBooked, status)
	})

	t.Run("drop payload takes precedence over status", func(t *testing.T) {
		status, ok := ResolveStatusRequest(models.LeadStatusBooked, "replied", statusOf)
		require.True(t, ok)
		assert.Equal(t, models.LeadStatusReplied, status)
	})

	t.Run("drop on a card resolves through lookup", func(t *testing.T) {
		status, ok := ResolveStatusRequest("", "card-1", statusOf)
		require.True(t, ok)
		assert.Equal(t, models.LeadStatusFollowup1, status)
	})

	t.Run("unrecognized drop target has no target", func(t *testing.T) {
		_, ok := ResolveStatusRequest("", "card-404", statusOf)
		assert.False(t, ok)
	})

	t.Run("empty request has no target", func(t *testing.T) {
		_, ok := ResolveStatusRequest("", "", statusOf)
		assert.False(t, ok)
	})
}
