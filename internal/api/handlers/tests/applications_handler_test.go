package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
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

func setupApplicationRouter(t *testing.T, apps *MockApplicationService, role models.Role) *gin.Engine {
	t.Helper()
	store, err := uploads.NewStore(t.TempDir())
	require.NoError(t, err)

	handler := handlers.NewApplicationHandler(apps, store, validator.New())
	auth := setAuthContext(testUserID, role)

	router := gin.New()
	router.POST("/api/applications", auth, handler.CreateApplication)
	router.GET("/api/applications/my-applications", auth, handler.GetMyApplications)
	router.GET("/api/applications/job/:jobId", auth, handler.GetJobApplications)
	router.PUT("/api/applications/:id/status", auth, handler.UpdateApplicationStatus)
	router.DELETE("/api/applications/:id", auth, handler.DeleteApplication)
	return router
}

func TestApplicationHandler_CreateApplication(t *testing.T) {
	jobID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		apps := new(MockApplicationService)
		router := setupApplicationRouter(t, apps, models.RoleUser)

		apps.On("Apply", mock.Anything, mock.MatchedBy(func(r *dto.ApplyRequest) bool {
			return r.JobID == jobID && r.ApplicantID == testUserID && r.CoverLetter == "Hire me"
		})).Return(&dto.ApplicationResponse{ID: uuid.New(), Status: models.ApplicationStatusPending}, nil).Once()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("job_id", jobID.String()))
		require.NoError(t, mw.WriteField("cover_letter", "Hire me"))
		require.NoError(t, mw.Close())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/applications", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Application submitted successfully")
		apps.AssertExpectations(t)
	})

	t.Run("Missing job_id", func(t *testing.T) {
		apps := new(MockApplicationService)
		router := setupApplicationRouter(t, apps, models.RoleUser)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("cover_letter", "Hire me"))
		require.NoError(t, mw.Close())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/applications", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "job_id")
		apps.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
	})
}

func TestApplicationHandler_GetMyApplications(t *testing.T) {
	apps := new(MockApplicationService)
	router := setupApplicationRouter(t, apps, models.RoleUser)

	apps.On("ListMine", mock.Anything, testUserID).Return([]dto.ApplicationResponse{
		{ID: uuid.New(), Status: models.ApplicationStatusPending, Job: &dto.JobSummary{Title: "Backend Engineer"}},
	}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/applications/my-applications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Backend Engineer")
	apps.AssertExpectations(t)
}

func TestApplicationHandler_GetJobApplications(t *testing.T) {
	t.Run("Job not found", func(t *testing.T) {
		apps := new(MockApplicationService)
		router := setupApplicationRouter(t, apps, models.RoleAdmin)

		jobID := uuid.New()
		apps.On("ListForJob", mock.Anything, jobID).Return(nil, services.ErrNotFound).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/applications/job/"+jobID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Job not found")
	})

	t.Run("Success", func(t *testing.T) {
		apps := new(MockApplicationService)
		router := setupApplicationRouter(t, apps, models.RoleAdmin)

		jobID := uuid.New()
		apps.On("ListForJob", mock.Anything, jobID).Return([]dto.ApplicationResponse{
			{ID: uuid.New(), Applicant: &dto.UserSummary{Name: "Applicant One"}},
		}, nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/applications/job/"+jobID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Applicant One")
	})
}

func TestApplicationHandler_UpdateApplicationStatus(t *testing.T) {
	appID := uuid.New()

	putStatus := func(t *testing.T, router *gin.Engine, status string) *httptest.ResponseRecorder {
		t.Helper()
		raw, err := json.Marshal(gin.H{"status": status})
		require.NoError(t, err)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/applications/"+appID.String()+"/status", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("Success", func(t *testing.T) {
		apps := new(MockApplicationService)
		router := setupApplicationRouter(t, apps, models.RoleAdmin)

		apps.On("UpdateStatus", mock.Anything, appID, models.ApplicationStatusAccepted).
			Return(&dto.ApplicationResponse{ID: appID, Status: models.ApplicationStatusAccepted}, nil).Once()

		w := putStatus(t, router, "accepted")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Application status updated successfully")
	})

	t.Run("Unknown status rejected before the service", func(t *testing.T) {
		apps := new(MockApplicationService)
		router := setupApplicationRouter(t, apps, models.RoleAdmin)

		w := putStatus(t, router, "archived")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Not found", func(t *testing.T) {
		apps := new(MockApplicationService)
		router := setupApplicationRouter(t, apps, models.RoleAdmin)

		apps.On("UpdateStatus", mock.Anything, appID, models.ApplicationStatusReviewed).
			Return(nil, services.ErrNotFound).Once()

		w := putStatus(t, router, "reviewed")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Application not found")
	})
}

func TestApplicationHandler_DeleteApplication(t *testing.T) {
	appID := uuid.New()

	t.Run("Owner withdraws", func(t *testing.T) {
		apps := new(MockApplicationService)
		router := setupApplicationRouter(t, apps, models.RoleUser)

		apps.On("Delete", mock.Anything, appID, testUserID, models.RoleUser).Return(nil).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/applications/"+appID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Application deleted successfully")
		apps.AssertExpectations(t)
	})

	t.Run("Stranger forbidden", func(t *testing.T) {
		apps := new(MockApplicationService)
		router := setupApplicationRouter(t, apps, models.RoleUser)

		apps.On("Delete", mock.Anything, appID, testUserID, models.RoleUser).Return(services.ErrForbidden).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/applications/"+appID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "your own applications")
	})
}
