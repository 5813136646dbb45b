package routes

import (
	"github.com/leadflow/leadflow_end/controllers"
	"github.com/leadflow/leadflow_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterEmailTemplateRoutes 注册邮件模板路由
func RegisterEmailTemplateRoutes(router *gin.Engine) {
	templateRoutes := router.Group("/api/email-templates")
	templateRoutes.Use(middleware.AuthMiddleware())

	templateRoutes.GET("/", controllers.GetEmailTemplates)
	templateRoutes.POST("/", controllers.CreateEmailTemplate)
	templateRoutes.PUT("/:id", controllers.UpdateEmailTemplate)
	templateRoutes.DELETE("/:id", controllers.DeleteEmailTemplate)
}
