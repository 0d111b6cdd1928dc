package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"jobverse/internal/models"
	"jobverse/internal/storage"
	"jobverse/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

const (
	adminStatsCacheKey = "jobverse:stats:admin"
	recentLimit        = 5
)

type adminService struct {
	userRepo storage.UserRepository
	jobRepo  storage.JobRepository
	appRepo  storage.ApplicationRepository
	txm      storage.TxManager
	cache    *redis.Client
}

// NewAdminService creates a new instance of AdminService. cache may be nil.
func NewAdminService(userRepo storage.UserRepository, jobRepo storage.JobRepository, appRepo storage.ApplicationRepository, txm storage.TxManager, cache *redis.Client) AdminService {
	return &adminService{
		userRepo: userRepo,
		jobRepo:  jobRepo,
		appRepo:  appRepo,
		txm:      txm,
		cache:    cache,
	}
}

func (s *adminService) Stats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	var cached dto.AdminStatsResponse
	if cacheGet(ctx, s.cache, adminStatsCacheKey, &cached) {
		return &cached, nil
	}

	totalUsers, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return nil, mapRepoError(err, "counting users")
	}
	totalJobs, err := s.jobRepo.CountAll(ctx)
	if err != nil {
		return nil, mapRepoError(err, "counting jobs")
	}
	totalApplications, err := s.appRepo.CountAll(ctx)
	if err != nil {
		return nil, mapRepoError(err, "counting applications")
	}
	pending, err := s.appRepo.CountByStatus(ctx, models.ApplicationStatusPending)
	if err != nil {
		return nil, mapRepoError(err, "counting pending applications")
	}

	stats := &dto.AdminStatsResponse{
		TotalUsers:          totalUsers,
		TotalJobs:           totalJobs,
		TotalApplications:   totalApplications,
		PendingApplications: pending,
	}
	cacheSet(ctx, s.cache, adminStatsCacheKey, stats, statsCacheTTL)
	return stats, nil
}

func (s *adminService) ListUsers(ctx context.Context, req *dto.ListUsersRequest) (*dto.UserListResponse, error) {
	q := &dto.ListUsersQuery{
		Search: req.Search,
		Limit:  req.Limit,
		Offset: (req.Page - 1) * req.Limit,
	}

	users, err := s.userRepo.List(ctx, q)
	if err != nil {
		return nil, mapRepoError(err, "listing users")
	}
	total, err := s.userRepo.Count(ctx, q)
	if err != nil {
		return nil, mapRepoError(err, "counting users")
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}

	return &dto.UserListResponse{
		Users:       out,
		TotalPages:  totalPages(total, req.Limit),
		CurrentPage: req.Page,
		Total:       total,
	}, nil
}

func (s *adminService) UpdateUserRole(ctx context.Context, id uuid.UUID, role models.Role) (*dto.UserResponse, error) {
	user, err := s.userRepo.Update(ctx, &dto.UpdateUserRequest{ID: id, Role: &role})
	if err != nil {
		return nil, mapRepoError(err, "updating user role")
	}
	log.Printf("AdminService: User %s role changed to %s", id, role)
	resp := toUserResponse(user)
	return &resp, nil
}

// DeleteUser removes an account together with its applications, keeping the
// affected jobs' counters in step. Admin accounts cannot be deleted.
func (s *adminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
		userRepo := s.userRepo.WithTx(tx)

		user, err := userRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%w: user not found", ErrNotFound)
			}
			return err
		}
		if user.Role == models.RoleAdmin {
			return fmt.Errorf("%w: admin accounts cannot be deleted", ErrValidation)
		}

		jobIDs, err := s.appRepo.WithTx(tx).DeleteByApplicant(ctx, id)
		if err != nil {
			return err
		}
		jobRepo := s.jobRepo.WithTx(tx)
		for _, jobID := range jobIDs {
			if err := jobRepo.AdjustApplicationCount(ctx, jobID, -1); err != nil {
				return err
			}
		}

		if err := userRepo.Delete(ctx, id); err != nil {
			return err
		}
		log.Printf("AdminService: Deleted user %s and %d applications", id, len(jobIDs))
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return err
		}
		log.Printf("AdminService: Error deleting user %s: %v", id, err)
		return fmt.Errorf("internal error deleting user: %w", err)
	}
	return nil
}

func (s *adminService) ListJobs(ctx context.Context, req *dto.ListJobsRequest) (*dto.JobListResponse, error) {
	// Unlike the public catalog, the admin listing includes inactive jobs.
	q := &dto.ListJobsQuery{
		Search:   req.Search,
		Location: req.Location,
		Type:     req.Type,
		Category: req.Category,
		Limit:    req.Limit,
		Offset:   (req.Page - 1) * req.Limit,
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

func (s *adminService) ListApplications(ctx context.Context, req *dto.ListApplicationsRequest) (*dto.ApplicationListResponse, error) {
	q := &dto.ListApplicationsQuery{
		Search: req.Search,
		Limit:  req.Limit,
		Offset: (req.Page - 1) * req.Limit,
	}
	if req.Status != "" && req.Status != "all" {
		q.Status = models.ApplicationStatus(req.Status)
	}

	apps, err := s.appRepo.List(ctx, q)
	if err != nil {
		return nil, mapRepoError(err, "listing applications")
	}
	total, err := s.appRepo.Count(ctx, q)
	if err != nil {
		return nil, mapRepoError(err, "counting applications")
	}

	populated, err := populateApplications(ctx, s.jobRepo, s.userRepo, apps)
	if err != nil {
		return nil, mapRepoError(err, "resolving application references")
	}

	return &dto.ApplicationListResponse{
		Applications: populated,
		TotalPages:   totalPages(total, req.Limit),
		CurrentPage:  req.Page,
		Total:        total,
	}, nil
}

func (s *adminService) RecentUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userRepo.ListRecent(ctx, models.RoleUser, recentLimit)
	if err != nil {
		return nil, mapRepoError(err, "listing recent users")
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, nil
}

func (s *adminService) RecentApplications(ctx context.Context) ([]dto.ApplicationResponse, error) {
	apps, err := s.appRepo.ListRecent(ctx, recentLimit)
	if err != nil {
		return nil, mapRepoError(err, "listing recent applications")
	}
	populated, err := populateApplications(ctx, s.jobRepo, s.userRepo, apps)
	if err != nil {
		return nil, mapRepoError(err, "resolving application references")
	}
	return populated, nil
}
