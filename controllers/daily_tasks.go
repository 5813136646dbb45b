package controllers

import (
	"context"
	"time"

	"github.com/leadflow/leadflow_end/models"
	"github.com/leadflow/leadflow_end/repository"
	"github.com/leadflow/leadflow_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// today 当前自然日
func today() string {
	return time.Now().Format("2006-01-02")
}

// ensureDailyTasks 为用户初始化当天的必做任务, 已存在的不覆盖
func ensureDailyTasks(ctx context.Context, userID, date string) error {
	coll := repository.Collection(repository.DailyTasksCollection)
	now := time.Now()

	for _, tmpl := range models.MandatoryDailyTasks {
		filter := bson.M{"userId": userID, "date": date, "taskId": tmpl.TaskID}
		update := bson.M{"$setOnInsert": bson.M{
			"taskId":       tmpl.TaskID,
			"title":        tmpl.Title,
			"description":  tmpl.Description,
			"targetCount":  tmpl.TargetCount,
			"currentCount": 0,
			"completed":    false,
			"icon":         tmpl.Icon,
			"userId":       userID,
			"date":         date,
			"createdAt":    now,
			"updatedAt":    now,
		}}

		_, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		if err != nil {
			// 并发初始化时唯一索引可能触发重复键, 视为已存在
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return err
		}
	}

	return nil
}

// GetDailyTasks 获取当前用户当天的任务清单和完成进度
func GetDailyTasks(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	ctx := c.Request.Context()
	date := today()

	if err := ensureDailyTasks(ctx, user.ID, date); err != nil {
		utils.HandleError(c, err)
		return
	}

	coll := repository.Collection(repository.DailyTasksCollection)
	cursor, err := coll.Find(ctx, bson.M{"userId": user.ID, "date": date},
		options.Find().SetSort(bson.D{{Key: "taskId", Value: 1}}))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(ctx)

	tasks := []models.DailyTask{}
	if err := cursor.All(ctx, &tasks); err != nil {
		utils.HandleError(c, err)
		return
	}

	progress := models.DailyTaskProgress{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			progress.Completed++
		}
	}

	utils.SuccessResponse(c, gin.H{"tasks": tasks, "progress": progress}, "")
}

// ToggleDailyTask 手动切换任务完成状态
func ToggleDailyTask(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	ctx := c.Request.Context()
	coll := repository.Collection(repository.DailyTasksCollection)
	filter := bson.M{"userId": user.ID, "date": today(), "taskId": c.Param("taskId")}

	var task models.DailyTask
	if err := coll.FindOne(ctx, filter).Decode(&task); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("每日任务"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	update := bson.M{"$set": bson.M{"completed": !task.Completed, "updatedAt": time.Now()}}
	if _, err := coll.UpdateOne(ctx, filter, update); err != nil {
		utils.HandleError(c, err)
		return
	}

	task.Completed = !task.Completed
	utils.SuccessResponse(c, task, "")
}

// IncrementDailyTask 手动累加任务计数
func IncrementDailyTask(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}

	task, err := incrementDailyTask(c.Request.Context(), user.ID, c.Param("taskId"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if task == nil {
		utils.HandleError(c, utils.CreateNotFoundError("每日任务"))
		return
	}

	utils.SuccessResponse(c, task, "")
}

// incrementDailyTask 累加计数并在达到目标时自动标记完成
func incrementDailyTask(ctx context.Context, userID, taskID string) (*models.DailyTask, error) {
	date := today()
	if err := ensureDailyTasks(ctx, userID, date); err != nil {
		return nil, err
	}

	coll := repository.Collection(repository.DailyTasksCollection)
	filter := bson.M{"userId": userID, "date": date, "taskId": taskID}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var task models.DailyTask
	err := coll.FindOneAndUpdate(ctx, filter, bson.M{
		"$inc": bson.M{"currentCount": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}, opts).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	// 达到目标自动完成, 不回退已完成状态
	if !task.Completed && task.CurrentCount >= task.TargetCount {
		if _, err := coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"completed": true}}); err != nil {
			return nil, err
		}
		task.Completed = true
	}

	return &task, nil
}

// incrementDailyTaskCounter 业务操作附带的任务计数, 失败只记日志不影响主流程
func incrementDailyTaskCounter(c *gin.Context, userID, taskID string) {
	if _, err := incrementDailyTask(c.Request.Context(), userID, taskID); err != nil {
		utils.LogError(err, map[string]interface{}{
			"userId": userID,
			"taskId": taskID,
		}, "累加每日任务计数失败")
	}
}
