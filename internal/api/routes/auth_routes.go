package routes

import (
	"jobverse/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and profile routes
func RegisterAuthRoutes(rg *gin.RouterGroup, authHandler *handlers.AuthHandler, authMiddleware gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/profile", authMiddleware, authHandler.GetProfile)
		auth.PUT("/profile", authMiddleware, authHandler.UpdateProfile)
	}
}
