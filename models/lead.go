package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeadStatus 线索状态枚举
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"        // 新线索
	LeadStatusEmailSent LeadStatus = "email-sent" // 已发送首封邮件
	LeadStatusFollowup1 LeadStatus = "followup-1" // 第一次跟进
	LeadStatusFollowup2 LeadStatus = "followup-2" // 第二次跟进
	LeadStatusFollowup3 LeadStatus = "followup-3" // 第三次跟进
	LeadStatusReplied   LeadStatus = "replied"    // 已回复
	LeadStatusBooked    LeadStatus = "booked"     // 已预约
	LeadStatusConverted LeadStatus = "converted"  // 已转化
	LeadStatusClosed    LeadStatus = "closed"     // 已关闭
)

// LeadStatusOption 状态展示项
type LeadStatusOption struct {
	Value LeadStatus `json:"value"`
	Label string     `json:"label"`
}

// LeadStatuses 管道阶段的规范顺序, 只允许在尾部追加新状态
var LeadStatuses = []LeadStatusOption{
	{Value: LeadStatusNew, Label: "New"},
	{Value: LeadStatusEmailSent, Label: "Email Sent"},
	{Value: LeadStatusFollowup1, Label: "Follow-up 1"},
	{Value: LeadStatusFollowup2, Label: "Follow-up 2"},
	{Value: LeadStatusFollowup3, Label: "Follow-up 3"},
	{Value: LeadStatusReplied, Label: "Replied"},
	{Value: LeadStatusBooked, Label: "Booked"},
	{Value: LeadStatusConverted, Label: "Converted"},
	{Value: LeadStatusClosed, Label: "Closed"},
}

// IsValidLeadStatus 判断状态是否属于状态枚举
func IsValidLeadStatus(s LeadStatus) bool {
	for _, opt := range LeadStatuses {
		if opt.Value == s {
			return true
		}
	}
	return false
}

// Lead 销售线索模型
type Lead struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CompanyName       string             `bson:"companyName" json:"companyName"`
	Website           string             `bson:"website" json:"website"`
	ContactPersonName string             `bson:"contactPersonName" json:"contactPersonName"`
	ContactEmail      string             `bson:"contactEmail" json:"contactEmail"`
	LinkedinProfile   string             `bson:"linkedinProfile,omitempty" json:"linkedinProfile,omitempty"`
	AssignedIntern    string             `bson:"assignedIntern" json:"assignedIntern"`
	Status            LeadStatus         `bson:"status" json:"status"`
	FollowupsSent     int                `bson:"followupsSent" json:"followupsSent"`
	HasReplies        bool               `bson:"hasReplies" json:"hasReplies"`
	UserID            string             `bson:"userId" json:"userId"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LeadCreateRequest 创建线索请求
type LeadCreateRequest struct {
	CompanyName       string     `json:"companyName" binding:"required"`
	Website           string     `json:"website"`
	ContactPersonName string     `json:"contactPersonName" binding:"required"`
	ContactEmail      string     `json:"contactEmail" binding:"required,email"`
	LinkedinProfile   string     `json:"linkedinProfile"`
	Status            LeadStatus `json:"status"`
}

// LeadStatusUpdateRequest 修改线索状态请求, 拖拽看板或直接编辑状态字段都走这里
// 直接编辑携带status; 看板拖拽携带落点overId (状态列ID或列内另一张卡片的ID)
type LeadStatusUpdateRequest struct {
	Status LeadStatus `json:"status"`
	OverID string     `json:"overId"`
}

// LeadStats 线索统计
type LeadStats struct {
	Total      int64 `json:"total"`
	New        int64 `json:"new"`
	EmailSent  int64 `json:"emailSent"`
	Followup1  int64 `json:"followup1"`
	Followup2  int64 `json:"followup2"`
	Followup3  int64 `json:"followup3"`
	Replied    int64 `json:"replied"`
	Booked     int64 `json:"booked"`
	Converted  int64 `json:"converted"`
	Closed     int64 `json:"closed"`
	HasReplies int64 `json:"hasReplies"`
}
