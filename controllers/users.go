package controllers

import (
	"net/http"
	"strings"
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

// GetUsers 获取用户列表, 仅管理员和经理可用
func GetUsers(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	if !utils.IsElevatedRole(user.Role) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	ctx := c.Request.Context()
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if role := c.Query("role"); role != "" {
		filter["role"] = role
	}

	cursor, err := repository.Collection(repository.UsersCollection).
		Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, users, "")
}

// GetInterns 获取已审批的实习生名单, 线索筛选下拉框使用
func GetInterns(c *gin.Context) {
	if _, err := utils.GetUser(c); err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	ctx := c.Request.Context()
	cursor, err := repository.Collection(repository.UsersCollection).Find(ctx, bson.M{
		"role":   models.UserRoleINTERN,
		"status": models.UserStatusAPPROVED,
	}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		utils.HandleError(c, err)
		return
	}

	names := []string{}
	for _, u := range users {
		names = append(names, u.Name)
	}

	utils.SuccessResponse(c, names, "")
}

// ApproveUser 审批注册申请, 仅管理员可用
func ApproveUser(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	if user.Role != string(models.UserRoleADMIN) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	var req models.ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求参数: "+err.Error()))
		return
	}

	objID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("用户"))
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if *req.Approved {
		update["status"] = models.UserStatusAPPROVED
		update["rejectionReason"] = ""
	} else {
		update["status"] = models.UserStatusREJECTED
		update["rejectionReason"] = req.Reason
	}

	result, err := repository.Collection(repository.UsersCollection).
		UpdateOne(c.Request.Context(), bson.M{"_id": objID}, bson.M{"$set": update})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("用户"))
		return
	}

	utils.SuccessResponse(c, nil, "审批完成")
}

// CreateUser 管理员直接创建已审批用户
func CreateUser(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	if user.Role != string(models.UserRoleADMIN) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求参数: "+err.Error()))
		return
	}

	now := time.Now()
	newUser := models.User{
		ID:        primitive.NewObjectID(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  utils.HashPassword(req.Password),
		Role:      req.Role,
		Status:    models.UserStatusAPPROVED,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = repository.Collection(repository.UsersCollection).
		InsertOne(c.Request.Context(), newUser)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.HandleError(c, utils.NewApiError("邮箱已被注册", http.StatusConflict, "EMAIL_EXISTS"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, newUser, "用户创建成功", http.StatusCreated)
}

// DeleteUser 删除用户, 仅管理员可用, 不能删除自己
func DeleteUser(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	if user.Role != string(models.UserRoleADMIN) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	id := c.Param("id")
	if id == user.ID {
		utils.HandleError(c, utils.CreateBadRequestError("不能删除当前登录账户"))
		return
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("用户"))
		return
	}

	result, err := repository.Collection(repository.UsersCollection).
		DeleteOne(c.Request.Context(), bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("用户"))
		return
	}

	utils.SuccessResponse(c, nil, "用户删除成功")
}
