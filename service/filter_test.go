package service

import (
	"testing"
	"time"

	"github.com/leadflow/leadflow_end/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterFixture(now time.Time) []models.Lead {
	days := func(n int) time.Time { return now.AddDate(0, 0, -n) }

	acme := leadWith(models.LeadStatusNew, days(1))
	acme.CompanyName = "Acme Corp"
	acme.ContactPersonName = "Jane Doe"
	acme.AssignedIntern = "Sarah"
	acme.CreatedAt = days(10)

	globex := leadWith(models.LeadStatusEmailSent, days(5))
	globex.CompanyName = "Globex"
	globex.ContactPersonName = "Hank Scorpio"
	globex.AssignedIntern = "Mike"
	globex.CreatedAt = days(5)

	initech := leadWith(models.LeadStatusFollowup1, days(2))
	initech.CompanyName = "Initech"
	initech.ContactPersonName = "Peter Gibbons"
	initech.AssignedIntern = "Sarah"
	initech.CreatedAt = days(3)

	hooli := leadWith(models.LeadStatusFollowup2, days(8))
	hooli.CompanyName = "Hooli"
	hooli.ContactPersonName = "Gavin Belson"
	hooli.AssignedIntern = "Mike"
	hooli.HasReplies = true
	hooli.CreatedAt = days(2)

	stark := leadWith(models.LeadStatusReplied, days(1))
	stark.CompanyName = "Stark Industries"
	stark.ContactPersonName = "Pepper Potts"
	stark.AssignedIntern = "Sarah"
	stark.CreatedAt = days(1)

	wayne := leadWith(models.LeadStatusConverted, days(1))
	wayne.CompanyName = "Wayne Enterprises"
	wayne.ContactPersonName = "Lucius Fox"
	wayne.AssignedIntern = "Mike"
	wayne.CreatedAt = days(20)

	return []models.Lead{acme, globex, initech, hooli, stark, wayne}
}

func companyNames(leads []models.Lead) []string {
	names := []string{}
	for _, lead := range leads {
		names = append(names, lead.CompanyName)
	}
	return names
}

func TestFilterLeadsSearch(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	leads := filterFixture(now)

	t.Run("matches company name case-insensitively", func(t *testing.T) {
		got := FilterLeads(leads, LeadFilter{Search: "ACME", Now: now})
		assert.Equal(t, []string{"Acme Corp"}, companyNames(got))
	})

	t.Run("matches contact person name", func(t *testing.T) {
		got := FilterLeads(leads, LeadFilter{Search: "scorpio", Now: now})
		assert.Equal(t, []string{"Globex"}, companyNames(got))
	})

	t.Run("no match yields empty list", func(t *testing.T) {
		got := FilterLeads(leads, LeadFilter{Search: "umbrella", Now: now})
		assert.Empty(t, got)
	})

	t.Run("blank search matches everything", func(t *testing.T) {
		got := FilterLeads(leads, LeadFilter{Search: "   ", Now: now})
		assert.Len(t, got, len(leads))
	})
}

func TestFilterLeadsQuickTabs(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	leads := filterFixture(now)

	tests := []struct {
		name string
		tab  QuickTab
		want []string
	}{
		{"all", QuickTabAll, []string{"Acme Corp", "Globex", "Initech", "Hooli", "Stark Industries", "Wayne Enterprises"}},
		{"needs email", QuickTabNeedsEmail, []string{"Acme Corp"}},
		{"email sent", QuickTabEmailSent, []string{"Globex"}},
		{"followup sent", QuickTabFollowupSent, []string{"Initech", "Hooli"}},
		// Globex已停留5天到期; Hooli停留8天但已有回复, 不算到期
		{"followup due", QuickTabFollowupDue, []string{"Globex"}},
		// 回复标签同时覆盖hasReplies和replied状态
		{"reply received", QuickTabReplyReceived, []string{"Hooli", "Stark Industries"}},
		{"closed", QuickTabClosed, []string{"Wayne Enterprises"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterLeads(leads, LeadFilter{Quick: tt.tab, Now: now})
			assert.Equal(t, tt.want, companyNames(got))
		})
	}
}

func TestFilterLeadsConjunctive(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	leads := filterFixture(now)

	t.Run("search combined with quick tab", func(t *testing.T) {
		got := FilterLeads(leads, LeadFilter{Search: "o", Quick: QuickTabFollowupSent, Now: now})
		assert.Equal(t, []string{"Initech", "Hooli"}, companyNames(got))

		got = FilterLeads(leads, LeadFilter{Search: "hooli", Quick: QuickTabFollowupDue, Now: now})
		assert.Empty(t, got)
	})

	t.Run("intern filter", func(t *testing.T) {
		got := FilterLeads(leads, LeadFilter{Intern: "Sarah", Now: now})
		assert.Equal(t, []string{"Acme Corp", "Initech", "Stark Industries"}, companyNames(got))
	})

	t.Run("status filter", func(t *testing.T) {
		got := FilterLeads(leads, LeadFilter{Status: models.LeadStatusEmailSent, Now: now})
		assert.Equal(t, []string{"Globex"}, companyNames(got))
	})

	t.Run("date range on createdAt is inclusive", func(t *testing.T) {
		from := now.AddDate(0, 0, -5)
		to := now.AddDate(0, 0, -2)
		got := FilterLeads(leads, LeadFilter{DateFrom: &from, DateTo: &to, Now: now})
		assert.Equal(t, []string{"Globex", "Initech", "Hooli"}, companyNames(got))
	})

	t.Run("all conditions together", func(t *testing.T) {
		got := FilterLeads(leads, LeadFilter{
			Search: "i",
			Quick:  QuickTabFollowupSent,
			Intern: "Sarah",
			Now:    now,
		})
		assert.Equal(t, []string{"Initech"}, companyNames(got))
	})
}

func TestFilterLeadsDoesNotMutateInput(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	leads := filterFixture(now)
	original := companyNames(leads)

	_ = FilterLeads(leads, LeadFilter{Search: "acme", Now: now})
	require.Equal(t, original, companyNames(leads))
}
