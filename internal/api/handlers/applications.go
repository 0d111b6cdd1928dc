package handlers

import (
	"errors"
	"log"
	"net/http"

	"jobverse/internal/api/middleware"
	"jobverse/internal/services"
	"jobverse/internal/transport/dto"
	"jobverse/internal/uploads"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ApplicationHandler holds the service dependencies for application operations
type ApplicationHandler struct {
	apps      services.ApplicationService
	store     *uploads.Store
	validator *validator.Validate
}

// NewApplicationHandler creates a new ApplicationHandler with the given service
func NewApplicationHandler(apps services.ApplicationService, store *uploads.Store, validate *validator.Validate) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, store: store, validator: validate}
}

// CreateApplication godoc
// @Summary      Apply to a job
// @Description  Multipart form carrying a job_id field; an optional resume document is stored on disk.
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  map[string]interface{} "Application submitted"
// @Failure      400  {object}  map[string]string "Bad Request - duplicate or inactive job"
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Failure      404  {object}  map[string]string "Job Not Found"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /applications [post]
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	jobID, err := uuid.Parse(c.PostForm("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid job_id field"})
		return
	}

	var req dto.ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body: " + err.Error()})
		return
	}
	req.JobID = jobID
	req.ApplicantID = userID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": FormatValidationErrors(err)})
		return
	}

	if fh, err := c.FormFile("resume"); err == nil {
		name, err := h.store.Save(fh, uploads.DocumentExtensions)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		req.Resume = name
	} else if !errors.Is(err, http.ErrMissingFile) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid resume upload"})
		return
	}

	resp, err := h.apps.Apply(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Job not found"})
		case errors.Is(err, services.ErrConflict):
			c.JSON(http.StatusBadRequest, gin.H{"message": "You have already applied to this job"})
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "This job is no longer accepting applications"})
		default:
			log.Printf("Error applying to job %s: %v", jobID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to submit application"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Application submitted successfully", "application": resp})
}

// GetMyApplications godoc
// @Summary      List the caller's applications
// @Description  Newest first, with the job and poster populated.
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.ApplicationResponse "Applications"
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /applications/my-applications [get]
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	resp, err := h.apps.ListMine(c.Request.Context(), userID)
	if err != nil {
		log.Printf("Error listing applications for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve applications"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetJobApplications godoc
// @Summary      List applications for a job
// @Description  Admin only. Newest first, with applicant summaries populated.
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        jobId path string true "Job ID" Format(uuid)
// @Success      200  {array}   dto.ApplicationResponse "Applications"
// @Failure      404  {object}  map[string]string "Job Not Found"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /applications/job/{jobId} [get]
func (h *ApplicationHandler) GetJobApplications(c *gin.Context) {
	jobID, ok := parseIDParam(c, "jobId")
	if !ok {
		return
	}

	resp, err := h.apps.ListForJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Job not found"})
		} else {
			log.Printf("Error listing applications for job %s: %v", jobID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve applications"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateApplicationStatus godoc
// @Summary      Update an application's status
// @Description  Admin only. Any known status value is accepted at any time.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                             true "Application ID" Format(uuid)
// @Param        body body dto.UpdateApplicationStatusRequest true "New status"
// @Success      200  {object}  map[string]interface{} "Status updated"
// @Failure      400  {object}  map[string]string "Bad Request - invalid status"
// @Failure      404  {object}  map[string]string "Application Not Found"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /applications/{id}/status [put]
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": FormatValidationErrors(err)})
		return
	}

	resp, err := h.apps.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Application not found"})
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid application status"})
		default:
			log.Printf("Error updating status for application %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update application status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application status updated successfully", "application": resp})
}

// DeleteApplication godoc
// @Summary      Withdraw or remove an application
// @Description  The applicant may withdraw their own application; admins may remove any.
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Application ID" Format(uuid)
// @Success      200  {object}  map[string]string "Application deleted"
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Failure      403  {object}  map[string]string "Forbidden - not the owner"
// @Failure      404  {object}  map[string]string "Application Not Found"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /applications/{id} [delete]
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}
	role, err := middleware.GetUserRoleFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	if err := h.apps.Delete(c.Request.Context(), id, userID, role); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Application not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"message": "You can only delete your own applications"})
		default:
			log.Printf("Error deleting application %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete application"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
}
