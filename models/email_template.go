package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmailTemplate 邮件模板
type EmailTemplate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Subject   string             `bson:"subject" json:"subject"`
	Body      string             `bson:"body" json:"body"`
	UserID    string             `bson:"userId" json:"userId"`
	IsPublic  bool               `bson:"isPublic" json:"isPublic"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EmailTemplateCreateRequest 创建邮件模板请求
type EmailTemplateCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Subject  string `json:"subject" binding:"required"`
	Body     string `json:"body" binding:"required"`
	IsPublic bool   `json:"isPublic"`
}

// SendEmailRequest 用模板给线索发送邮件的请求
type SendEmailRequest struct {
	TemplateID string `json:"templateId" binding:"required"`
}
