package handlers

import (
	"errors"
	"log"
	"net/http"

	"jobverse/internal/services"
	"jobverse/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// AdminHandler holds the service dependencies for the admin dashboard
type AdminHandler struct {
	admin     services.AdminService
	apps      services.ApplicationService
	validator *validator.Validate
}

// NewAdminHandler creates a new AdminHandler with the given services
func NewAdminHandler(admin services.AdminService, apps services.ApplicationService, validate *validator.Validate) *AdminHandler {
	return &AdminHandler{admin: admin, apps: apps, validator: validate}
}

// GetStats godoc
// @Summary      Admin dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.AdminStatsResponse "Stats"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	resp, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		log.Printf("Error computing admin stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve stats"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListUsers godoc
// @Summary      List users
// @Description  Paginated, with a free-text search over name and email.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query int    false "Page number"
// @Param        limit  query int    false "Page size"
// @Param        search query string false "Search over name and email"
// @Success      200  {object}  dto.UserListResponse "User page"
// @Failure      400  {object}  map[string]string "Bad Request - invalid query"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid query parameters: " + err.Error()})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": FormatValidationErrors(err)})
		return
	}

	resp, err := h.admin.ListUsers(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve users"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetRecentUsers godoc
// @Summary      Five newest regular users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.UserResponse "Recent users"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /admin/users/recent [get]
func (h *AdminHandler) GetRecentUsers(c *gin.Context) {
	resp, err := h.admin.RecentUsers(c.Request.Context())
	if err != nil {
		log.Printf("Error listing recent users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve recent users"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateUserRole godoc
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                    true "User ID" Format(uuid)
// @Param        body body dto.UpdateUserRoleRequest true "New role"
// @Success      200  {object}  dto.UserResponse "Updated user"
// @Failure      400  {object}  map[string]string "Bad Request - invalid role"
// @Failure      404  {object}  map[string]string "User Not Found"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /admin/users/{id}/role [put]
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": FormatValidationErrors(err)})
		return
	}

	resp, err := h.admin.UpdateUserRole(c.Request.Context(), id, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		} else {
			log.Printf("Error updating role for user %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user role"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteUser godoc
// @Summary      Delete a user account
// @Description  Refuses admin targets. The user's applications are removed and job counters adjusted.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID" Format(uuid)
// @Success      200  {object}  map[string]string "User deleted"
// @Failure      400  {object}  map[string]string "Bad Request - target is an admin"
// @Failure      404  {object}  map[string]string "User Not Found"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.admin.DeleteUser(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot delete admin users"})
		default:
			log.Printf("Error deleting user %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// ListJobs godoc
// @Summary      List all jobs including inactive ones
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query int    false "Page number"
// @Param        limit  query int    false "Page size"
// @Param        search query string false "Search over title, company, description"
// @Success      200  {object}  dto.JobListResponse "Job page"
// @Failure      400  {object}  map[string]string "Bad Request - invalid query"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /admin/jobs [get]
func (h *AdminHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid query parameters: " + err.Error()})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": FormatValidationErrors(err)})
		return
	}

	resp, err := h.admin.ListJobs(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Error listing jobs for admin: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve jobs"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListApplications godoc
// @Summary      List applications across all jobs
// @Description  Paginated; searches applicant name and job title/company, with an optional status filter.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query int    false "Page number"
// @Param        limit  query int    false "Page size"
// @Param        search query string false "Search over applicant and job"
// @Param        status query string false "Status filter, or all"
// @Success      200  {object}  dto.ApplicationListResponse "Application page"
// @Failure      400  {object}  map[string]string "Bad Request - invalid query"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /admin/applications [get]
func (h *AdminHandler) ListApplications(c *gin.Context) {
	var req dto.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid query parameters: " + err.Error()})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": FormatValidationErrors(err)})
		return
	}

	resp, err := h.admin.ListApplications(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Error listing applications for admin: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve applications"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetRecentApplications godoc
// @Summary      Five newest applications
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.ApplicationResponse "Recent applications"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /admin/applications/recent [get]
func (h *AdminHandler) GetRecentApplications(c *gin.Context) {
	resp, err := h.admin.RecentApplications(c.Request.Context())
	if err != nil {
		log.Printf("Error listing recent applications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve recent applications"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetApplicationByID godoc
// @Summary      Get a single application
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Application ID" Format(uuid)
// @Success      200  {object}  dto.ApplicationResponse "Application"
// @Failure      404  {object}  map[string]string "Application Not Found"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /admin/applications/{id} [get]
func (h *AdminHandler) GetApplicationByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.apps.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Application not found"})
		} else {
			log.Printf("Error fetching application %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve application"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
