package services

import (
	"context"
	"errors"
	"log"

	"jobverse/internal/storage"
	"jobverse/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

const jobStatsCacheKey = "jobverse:stats:jobs"

type jobService struct {
	jobRepo  storage.JobRepository
	appRepo  storage.ApplicationRepository
	userRepo storage.UserRepository
	txm      storage.TxManager
	cache    *redis.Client
}

// NewJobService creates a new instance of JobService. cache may be nil, in
// which case the public stats are computed on every request.
func NewJobService(jobRepo storage.JobRepository, appRepo storage.ApplicationRepository, userRepo storage.UserRepository, txm storage.TxManager, cache *redis.Client) JobService {
	return &jobService{
		jobRepo:  jobRepo,
		appRepo:  appRepo,
		userRepo: userRepo,
		txm:      txm,
		cache:    cache,
	}
}

func (s *jobService) List(ctx context.Context, req *dto.ListJobsRequest) (*dto.JobListResponse, error) {
	q := &dto.ListJobsQuery{
		Search:     req.Search,
		Location:   req.Location,
		Type:       req.Type,
		Category:   req.Category,
		ActiveOnly: true,
		Limit:      req.Limit,
		Offset:     (req.Page - 1) * req.Limit,
	}

	jobs, err := s.jobRepo.List(ctx, q)
	if err != nil {
		return nil, mapRepoError(err, "listing jobs")
	}
	total, err := s.jobRepo.Count(ctx, q)
	if err != nil {
		return nil, mapRepoError(err, "counting jobs")
	}

	populated, err := populateJobs(ctx, s.userRepo, jobs)
	if err != nil {
		return nil, mapRepoError(err, "resolving job posters")
	}

	return &dto.JobListResponse{
		Jobs:        populated,
		TotalPages:  totalPages(total, req.Limit),
		CurrentPage: req.Page,
		Total:       total,
	}, nil
}

func (s *jobService) Get(ctx context.Context, id uuid.UUID) (*dto.JobResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "fetching job")
	}

	// A missing poster renders as null instead of failing the lookup.
	var poster *dto.UserSummary
	if user, err := s.userRepo.GetByID(ctx, job.PostedBy); err == nil {
		poster = toUserSummary(user)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, mapRepoError(err, "resolving job poster")
	}

	resp := toJobResponse(job, poster)
	return &resp, nil
}

func (s *jobService) Create(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.Create(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "creating job")
	}
	log.Printf("JobService: Job %s (%s at %s) created by %s", job.ID, job.Title, job.Company, job.PostedBy)
	return s.Get(ctx, job.ID)
}

func (s *jobService) Update(ctx context.Context, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.Update(ctx, req)
	if err != nil {
		return nil, mapRepoError(err, "updating job")
	}
	return s.Get(ctx, job.ID)
}

// Delete removes a job and all applications filed against it in one
// transaction, so a failure partway cannot strand orphaned applications.
func (s *jobService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
		removed, err := s.appRepo.WithTx(tx).DeleteByJob(ctx, id)
		if err != nil {
			return err
		}
		if err := s.jobRepo.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		if removed > 0 {
			log.Printf("JobService: Deleted job %s and %d applications", id, removed)
		}
		return nil
	})
	if err != nil {
		return mapRepoError(err, "deleting job")
	}
	return nil
}

func (s *jobService) Stats(ctx context.Context) (*dto.JobStatsResponse, error) {
	var cached dto.JobStatsResponse
	if cacheGet(ctx, s.cache, jobStatsCacheKey, &cached) {
		return &cached, nil
	}

	totalJobs, err := s.jobRepo.CountActive(ctx)
	if err != nil {
		return nil, mapRepoError(err, "counting active jobs")
	}
	totalCompanies, err := s.jobRepo.CountDistinctActiveCompanies(ctx)
	if err != nil {
		return nil, mapRepoError(err, "counting companies")
	}
	totalApplications, err := s.appRepo.CountAll(ctx)
	if err != nil {
		return nil, mapRepoError(err, "counting applications")
	}

	stats := &dto.JobStatsResponse{
		TotalJobs:         totalJobs,
		TotalCompanies:    totalCompanies,
		TotalApplications: totalApplications,
	}
	cacheSet(ctx, s.cache, jobStatsCacheKey, stats, statsCacheTTL)
	return stats, nil
}
