package routes

import (
	"github.com/leadflow/leadflow_end/controllers"
	"github.com/leadflow/leadflow_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterDailyTaskRoutes 注册每日任务路由
func RegisterDailyTaskRoutes(router *gin.Engine) {
	taskRoutes := router.Group("/api/daily-tasks")
	taskRoutes.Use(middleware.AuthMiddleware())

	taskRoutes.GET("/", controllers.GetDailyTasks)
	taskRoutes.PATCH("/:taskId/toggle", controllers.ToggleDailyTask)
	taskRoutes.POST("/:taskId/increment", controllers.IncrementDailyTask)
}
