package storage

import (
	"context"

	"jobverse/internal/models"
	"jobverse/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TxManager runs a function inside a database transaction. The transaction
// is rolled back when fn returns an error and committed otherwise.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
	List(ctx context.Context, q *dto.ListUsersQuery) ([]models.User, error)
	Count(ctx context.Context, q *dto.ListUsersQuery) (int, error)
	ListRecent(ctx context.Context, role models.Role, limit int) ([]models.User, error)
	Update(ctx context.Context, req *dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountAll(ctx context.Context) (int, error)
	WithTx(tx pgx.Tx) UserRepository
}

// JobRepository defines the interface for job posting data operations.
type JobRepository interface {
	Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Job, error)
	List(ctx context.Context, q *dto.ListJobsQuery) ([]models.Job, error)
	Count(ctx context.Context, q *dto.ListJobsQuery) (int, error)
	Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// AdjustApplicationCount adds delta (may be negative) to a job's
	// denormalized application counter.
	AdjustApplicationCount(ctx context.Context, id uuid.UUID, delta int) error
	CountAll(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
	CountDistinctActiveCompanies(ctx context.Context) (int, error)
	WithTx(tx pgx.Tx) JobRepository
}

// ApplicationRepository defines the interface for job application data operations.
type ApplicationRepository interface {
	Create(ctx context.Context, req *dto.CreateApplicationRecord) (*models.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	GetByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (*models.Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error)
	List(ctx context.Context, q *dto.ListApplicationsQuery) ([]models.Application, error)
	Count(ctx context.Context, q *dto.ListApplicationsQuery) (int, error)
	ListRecent(ctx context.Context, limit int) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) (*models.Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByJob removes all applications for a job, returning how many
	// were deleted.
	DeleteByJob(ctx context.Context, jobID uuid.UUID) (int, error)
	// DeleteByApplicant removes all applications by a user and returns the
	// affected job IDs so callers can decrement the per-job counters.
	DeleteByApplicant(ctx context.Context, applicantID uuid.UUID) ([]uuid.UUID, error)
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.ApplicationStatus) (int, error)
	WithTx(tx pgx.Tx) ApplicationRepository
}
