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
)

// Login 用户登录
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求参数: "+err.Error()))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := repository.Collection(repository.UsersCollection).
		FindOne(c.Request.Context(), bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.NewApiError("邮箱或密码错误", http.StatusUnauthorized, "INVALID_CREDENTIALS"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		utils.HandleError(c, utils.NewApiError("邮箱或密码错误", http.StatusUnauthorized, "INVALID_CREDENTIALS"))
		return
	}

	// 未审批通过的账户不允许登录
	switch user.Status {
	case models.UserStatusPENDING:
		utils.HandleError(c, utils.NewApiError("账户等待审批中", http.StatusForbidden, "ACCOUNT_PENDING"))
		return
	case models.UserStatusREJECTED:
		utils.HandleError(c, utils.NewApiError("账户审批未通过", http.StatusForbidden, "ACCOUNT_REJECTED"))
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, models.LoginResponse{Token: token, User: user}, "登录成功")
}

// Register 用户注册, 注册后等待管理员审批
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求参数: "+err.Error()))
		return
	}

	// 禁止自助注册管理员
	if req.Role == models.UserRoleADMIN {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}
	if req.Role != models.UserRoleMANAGER && req.Role != models.UserRoleINTERN {
		utils.HandleError(c, utils.CreateBadRequestError("无效的用户角色"))
		return
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  utils.HashPassword(req.Password),
		Role:      req.Role,
		Status:    models.UserStatusPENDING,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := repository.Collection(repository.UsersCollection).
		InsertOne(c.Request.Context(), user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.HandleError(c, utils.NewApiError("邮箱已被注册", http.StatusConflict, "EMAIL_EXISTS"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, user, "注册成功, 请等待管理员审批", http.StatusCreated)
}

// ValidateToken 校验token有效性, 返回token中携带的用户信息
// 前端启动时用它判断本地token是否仍然可用
func ValidateToken(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	utils.SuccessResponse(c, gin.H{"valid": true, "user": user}, "")
}

// GetCurrentUser 获取当前登录用户
func GetCurrentUser(c *gin.Context) {
	loginUser, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	user, err := repository.FindUserByID(loginUser.ID)
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("用户"))
		return
	}

	utils.SuccessResponse(c, user, "")
}
