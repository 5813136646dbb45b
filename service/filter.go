package service

import (
	"strings"
	"time"

	"github.com/leadflow/leadflow_end/models"
)

// QuickTab 线索列表的快捷筛选标签
type QuickTab string

const (
	QuickTabAll           QuickTab = "all"            // 全部
	QuickTabNeedsEmail    QuickTab = "needs-email"    // 待发首封邮件
	QuickTabEmailSent     QuickTab = "email-sent"     // 已发首封邮件
	QuickTabFollowupSent  QuickTab = "followup-sent"  // 已发跟进邮件
	QuickTabFollowupDue   QuickTab = "followup-due"   // 跟进到期待推进
	QuickTabReplyReceived QuickTab = "reply-received" // 已收到回复
	QuickTabClosed        QuickTab = "closed"         // 已结束
)

// LeadFilter 线索列表筛选条件, 各条件之间为与关系
type LeadFilter struct {
	Search   string            // 公司名或联系人的不区分大小写子串匹配
	Quick    QuickTab          // 快捷标签, 空值等同于all
	Status   models.LeadStatus // 精确状态
	Intern   string            // 指定负责实习生
	DateFrom *time.Time        // 创建时间下界 (含)
	DateTo   *time.Time        // 创建时间上界 (含)
	Now      time.Time         // 到期判定的参考时刻
}

// FilterLeads 在内存中按条件筛选线索, 不修改输入切片
func FilterLeads(leads []models.Lead, f LeadFilter) []models.Lead {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	result := []models.Lead{}

	for _, lead := range leads {
		if search != "" && !matchesSearch(lead, search) {
			continue
		}
		if !matchesQuickTab(lead, f.Quick, now) {
			continue
		}
		if f.Status != "" && lead.Status != f.Status {
			continue
		}
		if f.Intern != "" && lead.AssignedIntern != f.Intern {
			continue
		}
		if f.DateFrom != nil && lead.CreatedAt.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && lead.CreatedAt.After(*f.DateTo) {
			continue
		}

		result = append(result, lead)
	}

	return result
}

// matchesSearch 公司名或联系人包含搜索词即命中
func matchesSearch(lead models.Lead, search string) bool {
	return strings.Contains(strings.ToLower(lead.CompanyName), search) ||
		strings.Contains(strings.ToLower(lead.ContactPersonName), search)
}

// matchesQuickTab 快捷标签匹配
func matchesQuickTab(lead models.Lead, tab QuickTab, now time.Time) bool {
	switch tab {
	case "", QuickTabAll:
		return true
	case QuickTabNeedsEmail:
		return lead.Status == models.LeadStatusNew
	case QuickTabEmailSent:
		return lead.Status == models.LeadStatusEmailSent
	case QuickTabFollowupSent:
		return lead.Status == models.LeadStatusFollowup1 ||
			lead.Status == models.LeadStatusFollowup2 ||
			lead.Status == models.LeadStatusFollowup3
	case QuickTabFollowupDue:
		// 与自动推进使用同一套到期判定
		_, due := NextAdvance(lead, now)
		return due
	case QuickTabReplyReceived:
		return lead.HasReplies || lead.Status == models.LeadStatusReplied
	case QuickTabClosed:
		return lead.Status == models.LeadStatusConverted || lead.Status == models.LeadStatusClosed
	default:
		// 未知标签不过滤, 与all等价
		return true
	}
}
