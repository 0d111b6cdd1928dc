package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"jobverse/internal/api/handlers"
	"jobverse/internal/models"
	"jobverse/internal/services"
	"jobverse/internal/transport/dto"
	"jobverse/internal/uploads"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupJobRouter(t *testing.T, jobs *MockJobService, apps *MockApplicationService) (*gin.Engine, *uploads.Store) {
	t.Helper()
	store, err := uploads.NewStore(t.TempDir())
	require.NoError(t, err)

	handler := handlers.NewJobHandler(jobs, apps, store, validator.New())
	adminCtx := setAuthContext(uuid.New(), models.RoleAdmin)
	userCtx := setAuthContext(testUserID, models.RoleUser)

	router := gin.New()
	router.GET("/api/jobs", handler.ListJobs)
	router.GET("/api/jobs/stats", handler.GetJobStats)
	router.GET("/api/jobs/:id", handler.GetJobByID)
	router.POST("/api/jobs", adminCtx, handler.CreateJob)
	router.PUT("/api/jobs/:id", adminCtx, handler.UpdateJob)
	router.DELETE("/api/jobs/:id", adminCtx, handler.DeleteJob)
	router.POST("/api/jobs/:id/apply", userCtx, handler.ApplyToJob)
	return router, store
}

func TestJobHandler_ListJobs(t *testing.T) {
	jobs := new(MockJobService)
	router, _ := setupJobRouter(t, jobs, new(MockApplicationService))

	jobs.On("List", mock.Anything, mock.MatchedBy(func(r *dto.ListJobsRequest) bool {
		// Unset paging falls back to the form defaults.
		return r.Page == 1 && r.Limit == 10 && r.Search == "engineer"
	})).Return(&dto.JobListResponse{
		Jobs:        []dto.JobResponse{{ID: uuid.New(), Title: "Backend Engineer"}},
		TotalPages:  1,
		CurrentPage: 1,
		Total:       1,
	}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/jobs?search=engineer", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "totalPages")
	assert.Contains(t, w.Body.String(), "currentPage")
	jobs.AssertExpectations(t)
}

func TestJobHandler_GetJobByID(t *testing.T) {
	t.Run("Invalid ID", func(t *testing.T) {
		router, _ := setupJobRouter(t, new(MockJobService), new(MockApplicationService))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/jobs/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		jobs := new(MockJobService)
		router, _ := setupJobRouter(t, jobs, new(MockApplicationService))

		jobID := uuid.New()
		jobs.On("Get", mock.Anything, jobID).Return(nil, services.ErrNotFound).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/jobs/"+jobID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Job not found")
	})
}

func TestJobHandler_GetJobStats(t *testing.T) {
	jobs := new(MockJobService)
	router, _ := setupJobRouter(t, jobs, new(MockApplicationService))

	jobs.On("Stats", mock.Anything).Return(&dto.JobStatsResponse{
		TotalJobs:         10,
		TotalCompanies:    3,
		TotalApplications: 42,
	}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/jobs/stats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "totalCompanies")
}

func TestJobHandler_CreateJob(t *testing.T) {
	t.Run("Success with logo upload", func(t *testing.T) {
		jobs := new(MockJobService)
		router, _ := setupJobRouter(t, jobs, new(MockApplicationService))

		jobs.On("Create", mock.Anything, mock.MatchedBy(func(r *dto.CreateJobRequest) bool {
			return r.Title == "Backend Engineer" && r.CompanyLogo != ""
		})).Return(&dto.JobResponse{ID: uuid.New(), Title: "Backend Engineer"}, nil).Once()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("title", "Backend Engineer"))
		require.NoError(t, mw.WriteField("company", "Acme"))
		require.NoError(t, mw.WriteField("location", "Remote"))
		require.NoError(t, mw.WriteField("type", "full-time"))
		require.NoError(t, mw.WriteField("description", "Build services"))
		fw, err := mw.CreateFormFile("companyLogo", "logo.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("img"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/jobs", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		jobs.AssertExpectations(t)
	})

	t.Run("Missing required fields", func(t *testing.T) {
		jobs := new(MockJobService)
		router, _ := setupJobRouter(t, jobs, new(MockApplicationService))

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("title", "No company"))
		require.NoError(t, mw.Close())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/jobs", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		jobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestJobHandler_UpdateJob_ReplacedLogoRemoved(t *testing.T) {
	jobs := new(MockJobService)
	router, store := setupJobRouter(t, jobs, new(MockApplicationService))

	jobID := uuid.New()
	oldLogo := "1000-old.png"
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), oldLogo), []byte("old"), 0o644))

	jobs.On("Get", mock.Anything, jobID).Return(&dto.JobResponse{
		ID:          jobID,
		Title:       "Backend Engineer",
		CompanyLogo: oldLogo,
	}, nil).Once()
	jobs.On("Update", mock.Anything, mock.MatchedBy(func(r *dto.UpdateJobRequest) bool {
		return r.ID == jobID && r.CompanyLogo != nil && *r.CompanyLogo != oldLogo
	})).Return(&dto.JobResponse{ID: jobID, Title: "Backend Engineer"}, nil).Once()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("companyLogo", "logo.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("new"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/jobs/"+jobID.String(), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	_, statErr := os.Stat(filepath.Join(store.Dir(), oldLogo))
	assert.True(t, os.IsNotExist(statErr), "replaced logo should be removed from disk")
	jobs.AssertExpectations(t)
}

func TestJobHandler_DeleteJob(t *testing.T) {
	jobs := new(MockJobService)
	router, _ := setupJobRouter(t, jobs, new(MockApplicationService))

	jobID := uuid.New()
	jobs.On("Delete", mock.Anything, jobID).Return(nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/jobs/"+jobID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Job deleted successfully")
}

func TestJobHandler_ApplyToJob(t *testing.T) {
	jobID := uuid.New()

	newApplyForm := func(t *testing.T, withResume bool) (*bytes.Buffer, string) {
		t.Helper()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("cover_letter", "I am keen"))
		if withResume {
			fw, err := mw.CreateFormFile("resume", "resume.pdf")
			require.NoError(t, err)
			_, err = fw.Write([]byte("resume"))
			require.NoError(t, err)
		}
		require.NoError(t, mw.Close())
		return &buf, mw.FormDataContentType()
	}

	t.Run("Success", func(t *testing.T) {
		apps := new(MockApplicationService)
		router, _ := setupJobRouter(t, new(MockJobService), apps)

		apps.On("Apply", mock.Anything, mock.MatchedBy(func(r *dto.ApplyRequest) bool {
			return r.JobID == jobID && r.ApplicantID == testUserID && r.Resume != ""
		})).Return(&dto.ApplicationResponse{ID: uuid.New(), Status: models.ApplicationStatusPending}, nil).Once()

		body, contentType := newApplyForm(t, true)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/jobs/"+jobID.String()+"/apply", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Application submitted successfully")
		apps.AssertExpectations(t)
	})

	t.Run("Duplicate", func(t *testing.T) {
		apps := new(MockApplicationService)
		router, _ := setupJobRouter(t, new(MockJobService), apps)

		apps.On("Apply", mock.Anything, mock.Anything).Return(nil, services.ErrConflict).Once()

		body, contentType := newApplyForm(t, false)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/jobs/"+jobID.String()+"/apply", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "already applied")
	})
}
