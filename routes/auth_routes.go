package routes

import (
	"github.com/leadflow/leadflow_end/controllers"
	"github.com/leadflow/leadflow_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册认证相关路由
func RegisterAuthRoutes(router *gin.Engine) {
	authRoutes := router.Group("/api/auth")

	authRoutes.POST("/login", controllers.Login)
	authRoutes.POST("/register", controllers.Register)
	authRoutes.GET("/validate", middleware.AuthMiddleware(), controllers.ValidateToken)
	authRoutes.GET("/me", middleware.AuthMiddleware(), controllers.GetCurrentUser)
}
