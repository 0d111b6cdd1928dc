package routes

import (
	"jobverse/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes registers the admin dashboard routes
func RegisterAdminRoutes(rg *gin.RouterGroup, adminHandler *handlers.AdminHandler, authMiddleware, adminOnly gin.HandlerFunc) {
	admin := rg.Group("/admin")
	admin.Use(authMiddleware, adminOnly)
	{
		admin.GET("/stats", adminHandler.GetStats)

		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/users/recent", adminHandler.GetRecentUsers)
		admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)

		admin.GET("/jobs", adminHandler.ListJobs)

		admin.GET("/applications", adminHandler.ListApplications)
		admin.GET("/applications/recent", adminHandler.GetRecentApplications)
		admin.GET("/applications/:id", adminHandler.GetApplicationByID)
	}
}
