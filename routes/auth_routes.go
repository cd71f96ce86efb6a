package routes

import (
	"campusfix/controllers"
	"campusfix/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(r *gin.Engine) {
	// Public auth routes
	r.POST("/register", controllers.Register)
	r.POST("/login", controllers.Login)
	r.POST("/logout", controllers.Logout)

	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	auth.PUT("/password", controllers.ChangePassword)
	auth.GET("/profile", controllers.GetProfile)
	auth.PUT("/profile", controllers.UpdateProfile)
	auth.POST("/upload", controllers.UploadReportImage)
}
