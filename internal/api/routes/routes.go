package routes

import (
	"log"

	"jobverse/internal/api/handlers"
	"jobverse/internal/api/middleware"
	"jobverse/internal/app"
	"jobverse/internal/models"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up the API routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	// --- Base API Group ---
	api := router.Group("/api")

	//Create handlers
	authHandler := handlers.NewAuthHandler(app.UserService, app.Validator)
	jobHandler := handlers.NewJobHandler(app.JobService, app.ApplicationService, app.Uploads, app.Validator)
	applicationHandler := handlers.NewApplicationHandler(app.ApplicationService, app.Uploads, app.Validator)
	adminHandler := handlers.NewAdminHandler(app.AdminService, app.ApplicationService, app.Validator)

	// --- Middleware ---
	authMiddleware := middleware.JWTAuthMiddleware(app.Config.JWT.Secret)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// --- Register Resource Routes ---
	RegisterAuthRoutes(api, authHandler, authMiddleware)
	RegisterJobRoutes(api, jobHandler, authMiddleware, adminOnly)
	RegisterApplicationRoutes(api, applicationHandler, authMiddleware, adminOnly)
	RegisterAdminRoutes(api, adminHandler, authMiddleware, adminOnly)

	// --- Health Check ---
	router.GET("/health", handlers.HealthCheck)

	// Uploaded logos and resumes are served as-is.
	router.Static("/uploads", app.Uploads.Dir())

	log.Println("Configuring Swagger UI handler")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
