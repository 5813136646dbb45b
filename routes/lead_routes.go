package routes

import (
	"github.com/leadflow/leadflow_end/controllers"
	"github.com/leadflow/leadflow_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterLeadRoutes 注册线索相关路由
func RegisterLeadRoutes(router *gin.Engine) {
	leadRoutes := router.Group("/api/leads")
	leadRoutes.Use(middleware.AuthMiddleware())

	leadRoutes.GET("/", controllers.GetLeads)
	leadRoutes.POST("/", controllers.CreateLead)
	leadRoutes.GET("/statuses", controllers.GetLeadStatuses)
	leadRoutes.GET("/stats", controllers.GetLeadStats)
	leadRoutes.POST("/auto-advance", controllers.AutoAdvanceLeads)
	leadRoutes.GET("/:id", controllers.GetLead)
	leadRoutes.PUT("/:id", controllers.UpdateLead)
	leadRoutes.PATCH("/:id/status", controllers.UpdateLeadStatus)
	leadRoutes.POST("/:id/send-email", controllers.SendLeadEmail)
	leadRoutes.DELETE("/:id", middleware.PermissionMiddleware("leads", "delete"), controllers.DeleteLead)
}
