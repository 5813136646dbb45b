package service

import (
	"time"

	"github.com/leadflow/leadflow_end/repository"
	"github.com/leadflow/leadflow_end/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// ScheduleDailyTaskAt 在每天指定时刻执行任务, 返回停止通道
func ScheduleDailyTaskAt(hour, minute int, task func(), taskName string) chan struct{} {
	stopChan := make(chan struct{})

	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
			if !next.After(now) {
				next = next.Add(24 * time.Hour)
			}

			utils.Logger.Info().
				Str("task", taskName).
				Time("nextRun", next).
				Msg("定时任务已排期")

			select {
			case <-time.After(next.Sub(now)):
				utils.Logger.Info().Str("task", taskName).Msg("开始执行定时任务")
				task()
			case <-stopChan:
				utils.Logger.Info().Str("task", taskName).Msg("定时任务已停止")
				return
			}
		}
	}()

	return stopChan
}

// CleanupOldDailyTasks 清理30天前的每日任务记录
func CleanupOldDailyTasks() {
	cutoff := time.Now().AddDate(0, 0, -30).Format("2006-01-02")

	result, err := repository.Collection(repository.DailyTasksCollection).DeleteMany(
		repository.GetContext(),
		bson.M{"date": bson.M{"$lt": cutoff}},
	)
	if err != nil {
		utils.LogError(err, nil, "清理过期每日任务失败")
		return
	}

	if result.DeletedCount > 0 {
		utils.Logger.Info().Int64("deleted", result.DeletedCount).Msg("过期每日任务清理完成")
	}
}
