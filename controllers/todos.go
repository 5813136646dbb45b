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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetTodos 获取待办列表
// 管理员和经理看到全部, 实习生只看到指派给自己或全员的
func GetTodos(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	filter := bson.M{}
	if !utils.IsElevatedRole(user.Role) {
		filter["assignedTo"] = bson.M{"$in": []string{user.Name, "all"}}
	}
	if completed := c.Query("completed"); completed != "" {
		filter["completed"] = completed == "true"
	}

	ctx := c.Request.Context()
	cursor, err := repository.Collection(repository.TodosCollection).
		Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	todos := []models.TodoTask{}
	if err := cursor.All(ctx, &todos); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, todos, "")
}

// CreateTodo 下发待办, 仅管理员和经理可用
func CreateTodo(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	if !utils.HasPermission(models.UserRole(user.Role), "todos", "create") {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	var req models.TodoCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("无效的请求参数: "+err.Error()))
		return
	}

	todo := models.TodoTask{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   user.Name,
		DueDate:     req.DueDate,
		CreatedAt:   time.Now(),
	}

	_, err = repository.Collection(repository.TodosCollection).
		InsertOne(c.Request.Context(), todo)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, todo, "待办创建成功", http.StatusCreated)
}

// ToggleTodo 切换待办完成状态
func ToggleTodo(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("待办"))
		return
	}

	ctx := c.Request.Context()
	coll := repository.Collection(repository.TodosCollection)

	var todo models.TodoTask
	if err := coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&todo); err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("待办"))
		return
	}

	// 实习生只能操作指派给自己或全员的待办
	if !utils.IsElevatedRole(user.Role) && todo.AssignedTo != user.Name && todo.AssignedTo != "all" {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	update := bson.M{"completed": !todo.Completed}
	if !todo.Completed {
		now := time.Now()
		update["completedAt"] = now
	} else {
		update["completedAt"] = nil
	}

	if _, err := coll.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update}); err != nil {
		utils.HandleError(c, err)
		return
	}

	todo.Completed = !todo.Completed
	utils.SuccessResponse(c, todo, "")
}

// DeleteTodo 删除待办, 仅管理员和经理可用
func DeleteTodo(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	if !utils.HasPermission(models.UserRole(user.Role), "todos", "delete") {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("待办"))
		return
	}

	result, err := repository.Collection(repository.TodosCollection).
		DeleteOne(c.Request.Context(), bson.M{"_id": objID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("待办"))
		return
	}

	utils.SuccessResponse(c, nil, "待办删除成功")
}
