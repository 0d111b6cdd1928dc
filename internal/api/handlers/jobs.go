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
)

// JobHandler holds the service dependencies for the job catalog, including
// the application workflow reached through POST /jobs/:id/apply.
type JobHandler struct {
	jobs      services.JobService
	apps      services.ApplicationService
	store     *uploads.Store
	validator *validator.Validate
}

// NewJobHandler creates a new JobHandler with the given services
func NewJobHandler(jobs services.JobService, apps services.ApplicationService, store *uploads.Store, validate *validator.Validate) *JobHandler {
	return &JobHandler{jobs: jobs, apps: apps, store: store, validator: validate}
}

// ListJobs godoc
// @Summary      List active jobs
// @Description  Paginated public listing with free-text and field filters.
// @Tags         jobs
// @Produce      json
// @Param        page     query int    false "Page number"
// @Param        limit    query int    false "Page size"
// @Param        search   query string false "Free-text search over title, company, description"
// @Param        location query string false "Location filter"
// @Param        type     query string false "Job type filter"
// @Param        category query string false "Category filter"
// @Success      200  {object}  dto.JobListResponse "Job page"
// @Failure      400  {object}  map[string]string "Bad Request - invalid query"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid query parameters: " + err.Error()})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": FormatValidationErrors(err)})
		return
	}

	resp, err := h.jobs.List(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Error listing jobs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve jobs"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetJobStats godoc
// @Summary      Public job-board statistics
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  dto.JobStatsResponse "Stats"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /jobs/stats [get]
func (h *JobHandler) GetJobStats(c *gin.Context) {
	resp, err := h.jobs.Stats(c.Request.Context())
	if err != nil {
		log.Printf("Error computing job stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve stats"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetJobByID godoc
// @Summary      Get a job by ID
// @Tags         jobs
// @Produce      json
// @Param        id path string true "Job ID" Format(uuid)
// @Success      200  {object}  dto.JobResponse "Job"
// @Failure      400  {object}  map[string]string "Bad Request - invalid ID"
// @Failure      404  {object}  map[string]string "Job Not Found"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetJobByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.jobs.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Job not found"})
		} else {
			log.Printf("Error fetching job %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve job"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateJob godoc
// @Summary      Create a job posting
// @Description  Admin only. Multipart form; an optional companyLogo image is stored on disk.
// @Tags         jobs
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  dto.JobResponse "Job created"
// @Failure      400  {object}  map[string]string "Bad Request - invalid input"
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Failure      403  {object}  map[string]string "Forbidden - admin only"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body: " + err.Error()})
		return
	}
	req.PostedBy = userID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": FormatValidationErrors(err)})
		return
	}

	if fh, err := c.FormFile("companyLogo"); err == nil {
		name, err := h.store.Save(fh, uploads.ImageExtensions)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		req.CompanyLogo = name
	} else if !errors.Is(err, http.ErrMissingFile) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid companyLogo upload"})
		return
	}

	resp, err := h.jobs.Create(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Error creating job: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create job"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// UpdateJob godoc
// @Summary      Update a job posting
// @Description  Admin only. Partial multipart update; a new companyLogo replaces the stored name.
// @Tags         jobs
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Job ID" Format(uuid)
// @Success      200  {object}  dto.JobResponse "Job updated"
// @Failure      400  {object}  map[string]string "Bad Request - invalid input"
// @Failure      404  {object}  map[string]string "Job Not Found"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id} [put]
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body: " + err.Error()})
		return
	}
	req.ID = id

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": FormatValidationErrors(err)})
		return
	}

	var replacedLogo string
	if fh, err := c.FormFile("companyLogo"); err == nil {
		if current, getErr := h.jobs.Get(c.Request.Context(), id); getErr == nil {
			replacedLogo = current.CompanyLogo
		}
		name, err := h.store.Save(fh, uploads.ImageExtensions)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		req.CompanyLogo = &name
	} else if !errors.Is(err, http.ErrMissingFile) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid companyLogo upload"})
		return
	}

	resp, err := h.jobs.Update(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Job not found"})
		} else {
			log.Printf("Error updating job %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update job"})
		}
		return
	}

	// The old logo file is no longer referenced once the update commits.
	if replacedLogo != "" && req.CompanyLogo != nil && replacedLogo != *req.CompanyLogo {
		if err := h.store.Remove(replacedLogo); err != nil {
			log.Printf("Failed to remove replaced logo %s: %v", replacedLogo, err)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteJob godoc
// @Summary      Delete a job posting
// @Description  Admin only. Also removes every application filed against the job.
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Job ID" Format(uuid)
// @Success      200  {object}  map[string]string "Job deleted"
// @Failure      404  {object}  map[string]string "Job Not Found"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id} [delete]
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.jobs.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Job not found"})
		} else {
			log.Printf("Error deleting job %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete job"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

// ApplyToJob godoc
// @Summary      Apply to a job
// @Description  Multipart form; an optional resume document is stored on disk.
// @Tags         jobs
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Job ID" Format(uuid)
// @Success      201  {object}  map[string]interface{} "Application submitted"
// @Failure      400  {object}  map[string]string "Bad Request - duplicate or inactive job"
// @Failure      401  {object}  map[string]string "Unauthorized"
// @Failure      404  {object}  map[string]string "Job Not Found"
// @Failure      500  {object}  map[string]string "Internal Server Error"
// @Router       /jobs/{id}/apply [post]
func (h *JobHandler) ApplyToJob(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
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
