package services

import (
	"context"

	"jobverse/internal/models"
	"jobverse/internal/transport/dto"

	"github.com/google/uuid"
)

// UserService handles registration, login and profile management.
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

// JobService handles the public job catalog and admin job management.
type JobService interface {
	List(ctx context.Context, req *dto.ListJobsRequest) (*dto.JobListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.JobResponse, error)
	Create(ctx context.Context, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	Update(ctx context.Context, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*dto.JobStatsResponse, error)
}

// ApplicationService handles the application workflow.
type ApplicationService interface {
	Apply(ctx context.Context, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ApplicationResponse, error)
	ListMine(ctx context.Context, applicantID uuid.UUID) ([]dto.ApplicationResponse, error)
	ListForJob(ctx context.Context, jobID uuid.UUID) ([]dto.ApplicationResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) (*dto.ApplicationResponse, error)
	// Delete removes an application. Non-admin callers may only delete
	// their own.
	Delete(ctx context.Context, id, actorID uuid.UUID, actorRole models.Role) error
}

// AdminService handles the admin dashboard: stats, user management and the
// cross-entity listings.
type AdminService interface {
	Stats(ctx context.Context) (*dto.AdminStatsResponse, error)
	ListUsers(ctx context.Context, req *dto.ListUsersRequest) (*dto.UserListResponse, error)
	UpdateUserRole(ctx context.Context, id uuid.UUID, role models.Role) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListJobs(ctx context.Context, req *dto.ListJobsRequest) (*dto.JobListResponse, error)
	ListApplications(ctx context.Context, req *dto.ListApplicationsRequest) (*dto.ApplicationListResponse, error)
	RecentUsers(ctx context.Context) ([]dto.UserResponse, error)
	RecentApplications(ctx context.Context) ([]dto.ApplicationResponse, error)
}
