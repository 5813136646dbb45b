package controllers

import (
	"net/http"
	"time"

	"github.com/leadflow/leadflow_end/models"
	"github.com/leadflow/leadflow_end/repository"
	"github.com/leadflow/leadflow_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// findUsableEmailTemplate 查找用户可使用的模板: 自己创建的或公共的
func findUsableEmailTemplate(c *gin.Context, user *utils.LoginUser, templateID string) (*models.EmailTemplate, error) {
	objID, err := primitive.ObjectIDFromHex(templateID)
	if err != nil {
		return nil, utils.CreateNotFoundError("邮件模板")
	}

	filter := bson.M{
		"_id": objID,
		"$or": []bson.M{
			{"userId": user.ID},
			{"isPublic": true},
		},
	}

	var tmpl models.EmailTemplate
	err = repository.Collection(repository.EmailTemplatesCollection).
		FindOne(c.Request.Context(), filter).Decode(&tmpl)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, utils.CreateNotFoundError("邮件模板")
		}
		return nil, err
	}

	return &tmpl, nil
}

// GetEmailTemplates 获取模板列表, 包含自己的和公共模板
func GetEmailTemplates(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	ctx := c.Request.Context()
	filter := bson.M{"$or": []bson.M{
		{"userId": user.ID},
		{"isPublic": true},
	}}

	cursor, err := repository.Collection(repository.EmailTemplatesCollection).
		Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	templates := []models.EmailTemplate{}
	if err := cursor.All(ctx, &templates); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, templates, "")
}

// CreateEmailTemplate 创建邮件模板
func CreateEmailTemplate(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	var req models.EmailTemplateCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求参数: "+err.Error()))
		return
	}

	now := time.Now()
	tmpl := models.EmailTemplate{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Subject:   req.Subject,
		Body:      req.Body,
		UserID:    user.ID,
		IsPublic:  req.IsPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = repository.Collection(repository.EmailTemplatesCollection).
		InsertOne(c.Request.Context(), tmpl)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, tmpl, "模板创建成功", http.StatusCreated)
}

// UpdateEmailTemplate 更新邮件模板, 仅限创建者或管理员
func UpdateEmailTemplate(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("邮件模板"))
		return
	}

	ctx := c.Request.Context()
	coll := repository.Collection(repository.EmailTemplatesCollection)

	var existing models.EmailTemplate
	if err := coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("邮件模板"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	if existing.UserID != user.ID && user.Role != string(models.UserRoleADMIN) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	var req models.EmailTemplateCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求参数: "+err.Error()))
		return
	}

	update := bson.M{"$set": bson.M{
		"name":      req.Name,
		"subject":   req.Subject,
		"body":      req.Body,
		"isPublic":  req.IsPublic,
		"updatedAt": time.Now(),
	}}

	if _, err := coll.UpdateOne(ctx, bson.M{"_id": objID}, update); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "模板更新成功")
}

// DeleteEmailTemplate 删除邮件模板, 仅限管理员
func DeleteEmailTemplate(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	if user.Role != string(models.UserRoleADMIN) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("邮件模板"))
		return
	}

	result, err := repository.Collection(repository.EmailTemplatesCollection).
		DeleteOne(c.Request.Context(), bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("邮件模板"))
		return
	}

	utils.SuccessResponse(c, nil, "模板删除成功")
}
