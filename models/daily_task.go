package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyTask 每日任务, 按用户和日期各存一份
type DailyTask struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TaskID       string             `bson:"taskId" json:"taskId"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	TargetCount  int                `bson:"targetCount" json:"targetCount"`
	CurrentCount int                `bson:"currentCount" json:"currentCount"`
	Completed    bool               `bson:"completed" json:"completed"`
	Icon         string             `bson:"icon" json:"icon"`
	UserID       string             `bson:"userId" json:"userId"`
	Date         string             `bson:"date" json:"date"` // YYYY-MM-DD
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DailyTaskTemplate 每日必做任务模板
type DailyTaskTemplate struct {
	TaskID      string
	Title       string
	Description string
	TargetCount int
	Icon        string
}

// 固定的每日任务 ID
const (
	DailyTaskFindLeads      = "find-leads"
	DailyTaskSubmitLeads    = "submit-leads"
	DailyTaskSendEmails     = "send-emails"
	DailyTaskFollowUp       = "follow-up"
	DailyTaskUpdateStatuses = "update-statuses"
)

// MandatoryDailyTasks 每天为每个用户初始化的任务清单
var MandatoryDailyTasks = []DailyTaskTemplate{
	{TaskID: DailyTaskFindLeads, Title: "Find 10-15 new leads", Description: "Research and identify potential prospects", TargetCount: 12, Icon: "search"},
	{TaskID: DailyTaskSubmitLeads, Title: "Submit leads using the form", Description: "Add discovered leads to the system", TargetCount: 5, Icon: "plus"},
	{TaskID: DailyTaskSendEmails, Title: "Send cold emails to new leads", Description: "Reach out to new prospects with initial emails", TargetCount: 8, Icon: "mail"},
	{TaskID: DailyTaskFollowUp, Title: "Follow up on pending leads", Description: "Send follow-up emails to existing leads", TargetCount: 10, Icon: "repeat"},
	{TaskID: DailyTaskUpdateStatuses, Title: "Update statuses", Description: "Update lead statuses based on responses", TargetCount: 5, Icon: "edit"},
}

// DailyTaskProgress 任务完成情况汇总
type DailyTaskProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}
