package routes

import (
	"github.com/leadflow/leadflow_end/controllers"
	"github.com/leadflow/leadflow_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterTodoRoutes 注册待办路由
func RegisterTodoRoutes(router *gin.Engine) {
	todoRoutes := router.Group("/api/todos")
	todoRoutes.Use(middleware.AuthMiddleware())

	todoRoutes.GET("/", controllers.GetTodos)
	todoRoutes.POST("/", middleware.PermissionMiddleware("todos", "create"), controllers.CreateTodo)
	todoRoutes.PATCH("/:id/toggle", controllers.ToggleTodo)
	todoRoutes.DELETE("/:id", middleware.PermissionMiddleware("todos", "delete"), controllers.DeleteTodo)
}
