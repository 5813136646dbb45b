package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole 用户角色枚举
type UserRole string

const (
	UserRoleADMIN   UserRole = "admin"   // 管理员
	UserRoleMANAGER UserRole = "manager" // 经理
	UserRoleINTERN  UserRole = "intern"  // 实习生
)

// UserStatus 用户状态枚举
type UserStatus string

const (
	UserStatusPENDING  UserStatus = "pending"
	UserStatusAPPROVED UserStatus = "approved"
	UserStatusREJECTED UserStatus = "rejected"
)

// User 用户类型
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password" json:"-"` // 不返回密码
	Role            UserRole           `bson:"role" json:"role"`
	Status          UserStatus         `bson:"status" json:"status"`
	Avatar          string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	RejectionReason string             `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OwnerScope 数据可见范围: admin/manager 可见全部线索, intern 只能看到自己的
type OwnerScope struct {
	UserID string
	Role   UserRole
}

// All 是否可见全部数据
func (s OwnerScope) All() bool {
	return s.Role == UserRoleADMIN || s.Role == UserRoleMANAGER
}

// 各种请求和响应结构
type (
	// LoginRequest 登录请求
	LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	// LoginResponse 登录响应
	LoginResponse struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}

	// RegisterRequest 注册请求
	RegisterRequest struct {
		Name     string   `json:"name" binding:"required,min=2"`
		Email    string   `json:"email" binding:"required,email"`
		Password string   `json:"password" binding:"required,min=6"`
		Role     UserRole `json:"role" binding:"required"`
	}

	// ApprovalRequest 审批请求
	ApprovalRequest struct {
		ID       string `json:"id" binding:"required"`
		Approved *bool  `json:"approved" binding:"required"`
		Reason   string `json:"reason"`
	}

	// CreateUserRequest 创建用户请求
	CreateUserRequest struct {
		Name     string   `json:"name" binding:"required,min=2"`
		Email    string   `json:"email" binding:"required,email"`
		Password string   `json:"password" binding:"required,min=6"`
		Role     UserRole `json:"role" binding:"required"`
	}
)
