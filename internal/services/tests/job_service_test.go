package services_test

import (
	"context"
	"errors"
	"testing"

	"jobverse/internal/models"
	"jobverse/internal/services"
	"jobverse/internal/storage"
	"jobverse/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newJobService(jobRepo *MockJobRepository, appRepo *MockApplicationRepository, userRepo *MockUserRepository) services.JobService {
	return services.NewJobService(jobRepo, appRepo, userRepo, stubTxManager{}, nil)
}

func TestJobService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Public listing filters to active jobs", func(t *testing.T) {
		jobRepo := new(MockJobRepository)
		appRepo := new(MockApplicationRepository)
		userRepo := new(MockUserRepository)
		svc := newJobService(jobRepo, appRepo, userRepo)

		posterID := uuid.New()
		jobs := []models.Job{
			{ID: uuid.New(), Title: "Backend Engineer", Company: "Acme", PostedBy: posterID, IsActive: true},
			{ID: uuid.New(), Title: "SRE", Company: "Acme", PostedBy: posterID, IsActive: true},
		}

		activeOnly := func(q *dto.ListJobsQuery) bool {
			return q.ActiveOnly && q.Limit == 10 && q.Offset == 10
		}
		jobRepo.On("List", mock.Anything, mock.MatchedBy(activeOnly)).Return(jobs, nil).Once()
		jobRepo.On("Count", mock.Anything, mock.MatchedBy(activeOnly)).Return(25, nil).Once()
		userRepo.On("GetByIDs", mock.Anything, []uuid.UUID{posterID}).
			Return([]models.User{{ID: posterID, Name: "Admin", Email: "admin@acme.com"}}, nil).Once()

		resp, err := svc.List(ctx, &dto.ListJobsRequest{Page: 2, Limit: 10})

		require.NoError(t, err)
		assert.Len(t, resp.Jobs, 2)
		assert.Equal(t, 3, resp.TotalPages) // ceil(25/10)
		assert.Equal(t, 2, resp.CurrentPage)
		assert.Equal(t, 25, resp.Total)
		require.NotNil(t, resp.Jobs[0].PostedBy)
		assert.Equal(t, "Admin", resp.Jobs[0].PostedBy.Name)
		jobRepo.AssertExpectations(t)
	})

	t.Run("Repository error surfaces as internal", func(t *testing.T) {
		jobRepo := new(MockJobRepository)
		svc := newJobService(jobRepo, new(MockApplicationRepository), new(MockUserRepository))

		repoErr := errors.New("db read error")
		jobRepo.On("List", mock.Anything, mock.Anything).Return(nil, repoErr).Once()

		resp, err := svc.List(ctx, &dto.ListJobsRequest{Page: 1, Limit: 10})

		require.Error(t, err)
		assert.True(t, errors.Is(err, repoErr))
		assert.Nil(t, resp)
	})
}

func TestJobService_Get(t *testing.T) {
	ctx := context.Background()
	jobID := uuid.New()
	posterID := uuid.New()

	t.Run("Success with populated poster", func(t *testing.T) {
		jobRepo := new(MockJobRepository)
		userRepo := new(MockUserRepository)
		svc := newJobService(jobRepo, new(MockApplicationRepository), userRepo)

		jobRepo.On("GetByID", mock.Anything, jobID).
			Return(&models.Job{ID: jobID, Title: "Backend Engineer", PostedBy: posterID}, nil).Once()
		userRepo.On("GetByID", mock.Anything, posterID).
			Return(&models.User{ID: posterID, Name: "Admin", Email: "admin@acme.com"}, nil).Once()

		resp, err := svc.Get(ctx, jobID)

		require.NoError(t, err)
		assert.Equal(t, jobID, resp.ID)
		require.NotNil(t, resp.PostedBy)
		assert.Equal(t, posterID, resp.PostedBy.ID)
	})

	t.Run("Poster missing renders null", func(t *testing.T) {
		jobRepo := new(MockJobRepository)
		userRepo := new(MockUserRepository)
		svc := newJobService(jobRepo, new(MockApplicationRepository), userRepo)

		jobRepo.On("GetByID", mock.Anything, jobID).
			Return(&models.Job{ID: jobID, PostedBy: posterID}, nil).Once()
		userRepo.On("GetByID", mock.Anything, posterID).Return(nil, storage.ErrNotFound).Once()

		resp, err := svc.Get(ctx, jobID)

		require.NoError(t, err)
		assert.Nil(t, resp.PostedBy)
	})

	t.Run("Not Found", func(t *testing.T) {
		jobRepo := new(MockJobRepository)
		svc := newJobService(jobRepo, new(MockApplicationRepository), new(MockUserRepository))

		jobRepo.On("GetByID", mock.Anything, jobID).Return(nil, storage.ErrNotFound).Once()

		resp, err := svc.Get(ctx, jobID)

		require.Error(t, err)
		assert.True(t, errors.Is(err, services.ErrNotFound))
		assert.Nil(t, resp)
	})
}

func TestJobService_Delete(t *testing.T) {
	ctx := context.Background()
	jobID := uuid.New()

	t.Run("Cascades to applications", func(t *testing.T) {
		jobRepo := new(MockJobRepository)
		appRepo := new(MockApplicationRepository)
		svc := newJobService(jobRepo, appRepo, new(MockUserRepository))

		appRepo.On("DeleteByJob", mock.Anything, jobID).Return(3, nil).Once()
		jobRepo.On("Delete", mock.Anything, jobID).Return(nil).Once()

		err := svc.Delete(ctx, jobID)

		require.NoError(t, err)
		appRepo.AssertExpectations(t)
		jobRepo.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		jobRepo := new(MockJobRepository)
		appRepo := new(MockApplicationRepository)
		svc := newJobService(jobRepo, appRepo, new(MockUserRepository))

		appRepo.On("DeleteByJob", mock.Anything, jobID).Return(0, nil).Once()
		jobRepo.On("Delete", mock.Anything, jobID).Return(storage.ErrNotFound).Once()

		err := svc.Delete(ctx, jobID)

		require.Error(t, err)
		assert.True(t, errors.Is(err, services.ErrNotFound))
	})
}

func TestJobService_Stats(t *testing.T) {
	ctx := context.Background()

	jobRepo := new(MockJobRepository)
	appRepo := new(MockApplicationRepository)
	svc := newJobService(jobRepo, appRepo, new(MockUserRepository))

	jobRepo.On("CountActive", mock.Anything).Return(12, nil).Once()
	jobRepo.On("CountDistinctActiveCompanies", mock.Anything).Return(4, nil).Once()
	appRepo.On("CountAll", mock.Anything).Return(57, nil).Once()

	resp, err := svc.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, 12, resp.TotalJobs)
	assert.Equal(t, 4, resp.TotalCompanies)
	assert.Equal(t, 57, resp.TotalApplications)
}
