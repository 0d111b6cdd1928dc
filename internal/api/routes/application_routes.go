package routes

import (
	"jobverse/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterApplicationRoutes registers the application workflow routes
func RegisterApplicationRoutes(rg *gin.RouterGroup, applicationHandler *handlers.ApplicationHandler, authMiddleware, adminOnly gin.HandlerFunc) {
	applications := rg.Group("/applications")
	applications.Use(authMiddleware)
	{
		applications.POST("", applicationHandler.CreateApplication)
		applications.GET("/my-applications", applicationHandler.GetMyApplications)
		applications.GET("/job/:jobId", adminOnly, applicationHandler.GetJobApplications)
		applications.PUT("/:id/status", adminOnly, applicationHandler.UpdateApplicationStatus)
		applications.DELETE("/:id", applicationHandler.DeleteApplication)
	}
}
