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

func leadWith(status models.LeadStatus, updatedAt time.Time) models.Lead {
	return models.Lead{
		CompanyName:       "Acme Corp",
		ContactPersonName: "Jane Doe",
		ContactEmail:      "jane@acme.com",
		Status:            status,
		UserID:            "u1",
		UpdatedAt:         updatedAt,
	}
}

func TestNextAdvance(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	days := func(n int) time.Time { return now.AddDate(0, 0, -n) }

	tests := []struct {
		name       string
		lead       models.Lead
		wantNext   models.LeadStatus
		wantDue    bool
	}{
		{"email-sent due at exactly 3 days", leadWith(models.LeadStatusEmailSent, days(3)), models.LeadStatusFollowup1, true},
		{"email-sent overdue", leadWith(models.LeadStatusEmailSent, days(10)), models.LeadStatusFollowup1, true},
		{"email-sent not yet due", leadWith(models.LeadStatusEmailSent, days(2)), "", false},
		{"followup-1 due at 4 days", leadWith(models.LeadStatusFollowup1, days(4)), models.LeadStatusFollowup2, true},
		{"followup-1 not yet due", leadWith(models.LeadStatusFollowup1, days(3)), "", false},
		{"followup-2 due at 7 days", leadWith(models.LeadStatusFollowup2, days(7)), models.LeadStatusFollowup3, true},
		{"followup-2 not yet due", leadWith(models.LeadStatusFollowup2, days(6)), "", false},
		{"new never advances", leadWith(models.LeadStatusNew, days(30)), "", false},
		{"followup-3 never advances", leadWith(models.LeadStatusFollowup3, days(30)), "", false},
		{"replied never advances", leadWith(models.LeadStatusReplied, days(30)), "", false},
		{"booked never advances", leadWith(models.LeadStatusBooked, days(30)), "", false},
		{"converted never advances", leadWith(models.LeadStatusConverted, days(30)), "", false},
		{"closed never advances", leadWith(models.LeadStatusClosed, days(30)), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, due := NextAdvance(tt.lead, now)
			assert.Equal(t, tt.wantDue, due)
			assert.Equal(t, tt.wantNext, next)
		})
	}

	t.Run("replies exempt a due lead", func(t *testing.T) {
		lead := leadWith(models.LeadStatusEmailSent, days(10))
		lead.HasReplies = true
		_, due := NextAdvance(lead, now)
		assert.False(t, due)
	})
}

func TestDaysElapsed(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// 不足一天按0计
	assert.Equal(t, 0, DaysElapsed(now.Add(-23*time.Hour), now))
	assert.Equal(t, 1, DaysElapsed(now.Add(-24*time.Hour), now))
	assert.Equal(t, 2, DaysElapsed(now.Add(-71*time.Hour), now))
	assert.Equal(t, 3, DaysElapsed(now.Add(-72*time.Hour), now))
}

func TestAdvanceEngineRun(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	days := func(n int) time.Time { return now.AddDate(0, 0, -n) }

	dueLead := leadWith(models.LeadStatusEmailSent, days(4))
	freshLead := leadWith(models.LeadStatusFollowup1, days(2))
	repliedLead := leadWith(models.LeadStatusFollowup2, days(8))
	repliedLead.HasReplies = true

	store := newFakeLeadStore(dueLead, freshLead, repliedLead)
	engine := NewAdvanceEngine(store)
	engine.now = func() time.Time { return now }

	advanced, err := engine.Run(context.Background(), models.OwnerScope{Role: models.UserRoleADMIN})
	require.NoError(t, err)
	require.Len(t, advanced, 1)

	got := store.get(advanced[0])
	assert.Equal(t, models.LeadStatusFollowup1, got.Status)
	assert.Equal(t, 1, got.FollowupsSent)
	assert.Equal(t, now, got.UpdatedAt)

	// 未到期和已回复的线索保持不变
	for _, id := range store.order {
		if id == advanced[0] {
			continue
		}
		lead := store.get(id)
		assert.Equal(t, 0, lead.FollowupsSent)
		assert.NotEqual(t, now, lead.UpdatedAt)
	}
}

func TestAdvanceEngineRunIsIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	store := newFakeLeadStore(leadWith(models.LeadStatusEmailSent, now.AddDate(0, 0, -5)))
	engine := NewAdvanceEngine(store)
	engine.now = func() time.Time { return now }

	first, err := engine.Run(context.Background(), models.OwnerScope{Role: models.UserRoleADMIN})
	require.NoError(t, err)
	require.Len(t, first, 1)

	// 推进会刷新updatedAt, 立即再跑一轮不会重复推进
	second, err := engine.Run(context.Background(), models.OwnerScope{Role: models.UserRoleADMIN})
	require.NoError(t, err)
	assert.Empty(t, second)

	got := store.get(first[0])
	assert.Equal(t, models.LeadStatusFollowup1, got.Status)
	assert.Equal(t, 1, got.FollowupsSent)
}

func TestAdvanceEngineRunContinuesAfterWriteFailure(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	broken := leadWith(models.LeadStatusEmailSent, now.AddDate(0, 0, -4))
	healthy := leadWith(models.LeadStatusFollowup1, now.AddDate(0, 0, -5))

	store := newFakeLeadStore(broken, healthy)
	store.writeErrs[store.order[0]] = errors.New("write conflict")

	engine := NewAdvanceEngine(store)
	engine.now = func() time.Time { return now }

	advanced, err := engine.Run(context.Background(), models.OwnerScope{Role: models.UserRoleADMIN})
	require.NoError(t, err)
	require.Len(t, advanced, 1)
	assert.Equal(t, store.order[1], advanced[0])
	assert.Equal(t, models.LeadStatusFollowup2, store.get(store.order[1]).Status)

	// 失败的线索保持原状态
	assert.Equal(t, models.LeadStatusEmailSent, store.get(store.order[0]).Status)
}

func TestAdvanceEngineRunListFailure(t *testing.T) {
	store := newFakeLeadStore()
	store.listErr = errors.New("connection refused")

	engine := NewAdvanceEngine(store)
	advanced, err := engine.Run(context.Background(), models.OwnerScope{Role: models.UserRoleADMIN})
	require.Error(t, err)
	assert.Nil(t, advanced)
}

func TestAdvanceEngineRunScoped(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	mine := leadWith(models.LeadStatusEmailSent, now.AddDate(0, 0, -4))
	theirs := leadWith(models.LeadStatusEmailSent, now.AddDate(0, 0, -4))
	theirs.UserID = "u2"

	store := newFakeLeadStore(mine, theirs)
	engine := NewAdvanceEngine(store)
	engine.now = func() time.Time { return now }

	// 实习生范围只推进自己的线索
	advanced, err := engine.Run(context.Background(), models.OwnerScope{UserID: "u1", Role: models.UserRoleINTERN})
	require.NoError(t, err)
	require.Len(t, advanced, 1)
	assert.Equal(t, store.order[0], advanced[0])
	assert.Equal(t, models.LeadStatusEmailSent, store.get(store.order[1]).Status)
}
