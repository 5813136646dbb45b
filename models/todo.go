package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TodoPriority 待办优先级
type TodoPriority string

const (
	TodoPriorityLow    TodoPriority = "low"
	TodoPriorityMedium TodoPriority = "medium"
	TodoPriorityHigh   TodoPriority = "high"
)

// TodoTask 管理员/经理下发给实习生的待办
type TodoTask struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Priority    TodoPriority       `bson:"priority" json:"priority"`
	AssignedTo  string             `bson:"assignedTo" json:"assignedTo"` // 实习生姓名或 "all"
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	DueDate     *time.Time         `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Completed   bool               `bson:"completed" json:"completed"`
	CompletedAt *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// TodoTemplate 常用待办模板
type TodoTemplate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Priority    TodoPriority       `bson:"priority" json:"priority"`
	IsDefault   bool               `bson:"isDefault" json:"isDefault"`
}

// TodoCreateRequest 创建待办请求
type TodoCreateRequest struct {
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description"`
	Priority    TodoPriority `json:"priority" binding:"required,oneof=low medium high"`
	AssignedTo  string       `json:"assignedTo" binding:"required"`
	DueDate     *time.Time   `json:"dueDate"`
}
