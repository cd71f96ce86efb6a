package routes

import (
	"campusfix/controllers"
	"campusfix/middleware"

	"github.com/gin-gonic/gin"
)

func SetupReportRoutes(r *gin.Engine) {
	reports := r.Group("/reports")
	reports.Use(middlewares.AuthMiddleware())

	reports.POST("", controllers.CreateReport)
	reports.GET("", controllers.ListReports)
	reports.GET("/:id", controllers.GetReport)

	reports.POST("/:id/assign", controllers.AssignReport)
	reports.POST("/:id/start", controllers.StartProgress)
	reports.POST("/:id/complete", controllers.CompleteReport)
	reports.POST("/:id/reject", controllers.RejectReport)
	reports.POST("/:id/messages", controllers.AppendConversationMessage)
	reports.POST("/:id/upvote", controllers.ToggleUpvote)

	assignment := r.Group("/assignment")
	assignment.Use(middlewares.AuthMiddleware())
	assignment.GET("/candidates", controllers.GetAssignmentCandidates)
}

func SetupActivityRoutes(r *gin.Engine) {
	activity := r.Group("/activity")
	activity.Use(middlewares.AuthMiddleware())

	activity.GET("/unseen", controllers.GetUnseenCount)
	activity.POST("/seen", controllers.MarkSeen)
	activity.GET("/ws", controllers.ActivityWS)
}
