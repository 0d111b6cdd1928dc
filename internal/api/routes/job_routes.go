package routes

import (
	"jobverse/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterJobRoutes registers the public catalog and admin job management routes
func RegisterJobRoutes(rg *gin.RouterGroup, jobHandler *handlers.JobHandler, authMiddleware, adminOnly gin.HandlerFunc) {
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", jobHandler.ListJobs)
		// Registered before /:id so "stats" is not parsed as a job ID.
		jobs.GET("/stats", jobHandler.GetJobStats)
		jobs.GET("/:id", jobHandler.GetJobByID)

		jobs.POST("", authMiddleware, adminOnly, jobHandler.CreateJob)
		jobs.PUT("/:id", authMiddleware, adminOnly, jobHandler.UpdateJob)
		jobs.DELETE("/:id", authMiddleware, adminOnly, jobHandler.DeleteJob)

		jobs.POST("/:id/apply", authMiddleware, jobHandler.ApplyToJob)
	}
}
