package routes

import (
	"github.com/leadflow/leadflow_end/controllers"
	"github.com/leadflow/leadflow_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 注册用户管理路由
func RegisterUserRoutes(router *gin.Engine) {
	userRoutes := router.Group("/api/users")
	userRoutes.Use(middleware.AuthMiddleware())

	userRoutes.GET("/", controllers.GetUsers)
	userRoutes.GET("/interns", controllers.GetInterns)
	userRoutes.POST("/", controllers.CreateUser)
	userRoutes.POST("/approve", controllers.ApproveUser)
	userRoutes.DELETE("/:id", controllers.DeleteUser)
}
