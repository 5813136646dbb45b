package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidLeadStatus(t *testing.T) {
	for _, opt := range LeadStatuses {
		assert.True(t, IsValidLeadStatus(opt.Value), string(opt.Value))
	}

	assert.False(t, IsValidLeadStatus("archived"))
	assert.False(t, IsValidLeadStatus(""))
	assert.False(t, IsValidLeadStatus("Email-Sent"))
}

func TestLeadStatusesOrder(t *testing.T) {
	// 看板列顺序依赖这个切片的顺序
	want := []LeadStatus{
		LeadStatusNew, LeadStatusEmailSent,
		LeadStatusFollowup1, LeadStatusFollowup2, LeadStatusFollowup3,
		LeadStatusReplied, LeadStatusBooked, LeadStatusConverted, LeadStatusClosed,
	}

	got := []LeadStatus{}
	for _, opt := range LeadStatuses {
		got = append(got, opt.Value)
	}
	assert.Equal(t, want, got)
}
