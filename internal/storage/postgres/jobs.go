// internal/storage/postgres/jobs.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"jobverse/internal/models"
	"jobverse/internal/storage"
	"jobverse/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, title, company, location, type, salary, description, requirements,
	benefits, skills, experience, category, company_logo, application_deadline,
	contact_email, posted_by, is_active, application_count, created_at, updated_at`

// JobRepo implements the storage.JobRepository interface using PostgreSQL.
type JobRepo struct {
	db Querier
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *pgxpool.Pool) *JobRepo {
	return &JobRepo{db: db}
}

// WithTx creates a new JobRepo bound to the transaction.
func (r *JobRepo) WithTx(tx pgx.Tx) storage.JobRepository {
	return &JobRepo{db: tx}
}

var _ storage.JobRepository = (*JobRepo)(nil)

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(
		&j.ID, &j.Title, &j.Company, &j.Location, &j.Type, &j.Salary,
		&j.Description, &j.Requirements, &j.Benefits, &j.Skills, &j.Experience,
		&j.Category, &j.CompanyLogo, &j.ApplicationDeadline, &j.ContactEmail,
		&j.PostedBy, &j.IsActive, &j.ApplicationCount, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// jobListConditions translates a listing query into WHERE fragments.
func jobListConditions(q *dto.ListJobsQuery, args *[]interface{}) []string {
	var conditions []string

	if q.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}
	if q.Search != "" {
		*args = append(*args, "%"+q.Search+"%")
		n := len(*args)
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE $%d OR company ILIKE $%d OR description ILIKE $%d)", n, n, n))
	}
	if q.Location != "" {
		*args = append(*args, "%"+q.Location+"%")
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", len(*args)))
	}
	if q.Type != "" {
		*args = append(*args, q.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(*args)))
	}
	if q.Category != "" {
		*args = append(*args, "%"+q.Category+"%")
		conditions = append(conditions, fmt.Sprintf("category ILIKE $%d", len(*args)))
	}

	return conditions
}

// Create saves a new job posting with a zero application count.
func (r *JobRepo) Create(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	skills := req.Skills
	if skills == nil {
		skills = []string{}
	}

	query := `
		INSERT INTO jobs (id, title, company, location, type, salary, description,
			requirements, benefits, skills, experience, category, company_logo,
			application_deadline, contact_email, posted_by, is_active,
			application_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, 0, NOW(), NOW())
		RETURNING ` + jobColumns

	row := r.db.QueryRow(ctx, query,
		uuid.New(), req.Title, req.Company, req.Location, req.Type, req.Salary,
		req.Description, req.Requirements, req.Benefits, skills, req.Experience,
		req.Category, req.CompanyLogo, req.ApplicationDeadline, req.ContactEmail,
		req.PostedBy, isActive,
	)

	job, err := scanJob(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			log.Printf("Error creating job: invalid posted_by %s: %v\n", req.PostedBy, err)
			return nil, fmt.Errorf("failed to create job: invalid poster ID: %w", storage.ErrConflict)
		}
		log.Printf("Error creating job: %v\n", err)
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	log.Printf("Job created successfully with ID: %s", job.ID)
	return job, nil
}

// GetByID retrieves a specific job by its ID.
func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Job not found with ID: %s\n", id)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning job by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get job by ID %s: %w", id, err)
	}
	return job, nil
}

// GetByIDs retrieves jobs for a set of IDs.
func (r *JobRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Job, error) {
	if len(ids) == 0 {
		return []models.Job{}, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ANY($1)`, ids)
	if err != nil {
		log.Printf("Error querying jobs by IDs: %v\n", err)
		return nil, fmt.Errorf("failed to query jobs by IDs: %w", err)
	}
	defer rows.Close()

	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		return nil, fmt.Errorf("failed to scan jobs by IDs: %w", err)
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	return jobs, nil
}

// List retrieves jobs matching the query, newest first.
func (r *JobRepo) List(ctx context.Context, q *dto.ListJobsQuery) ([]models.Job, error) {
	baseQuery := `SELECT ` + jobColumns + ` FROM jobs`
	args := []interface{}{}
	conditions := jobListConditions(q, &args)

	query := buildListQuery(baseQuery, conditions, &args, "created_at DESC", q.Limit, q.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying jobs: %v\n", err)
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Job])
	if err != nil {
		log.Printf("Error scanning jobs: %v\n", err)
		return nil, fmt.Errorf("failed to scan jobs: %w", err)
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	return jobs, nil
}

// Count returns the number of jobs matching the query.
func (r *JobRepo) Count(ctx context.Context, q *dto.ListJobsQuery) (int, error) {
	baseQuery := `SELECT COUNT(*) FROM jobs`
	args := []interface{}{}
	conditions := jobListConditions(q, &args)

	var count int
	if err := r.db.QueryRow(ctx, buildCountQuery(baseQuery, conditions), args...).Scan(&count); err != nil {
		log.Printf("Error counting jobs: %v\n", err)
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

// Update modifies an existing job based on non-nil fields in the request DTO.
func (r *JobRepo) Update(ctx context.Context, req *dto.UpdateJobRequest) (*models.Job, error) {
	var setClauses []string
	args := []interface{}{}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Title != nil {
		addSet("title", *req.Title)
	}
	if req.Company != nil {
		addSet("company", *req.Company)
	}
	if req.Location != nil {
		addSet("location", *req.Location)
	}
	if req.Type != nil {
		addSet("type", *req.Type)
	}
	if req.Salary != nil {
		addSet("salary", *req.Salary)
	}
	if req.Description != nil {
		addSet("description", *req.Description)
	}
	if req.Requirements != nil {
		addSet("requirements", *req.Requirements)
	}
	if req.Benefits != nil {
		addSet("benefits", *req.Benefits)
	}
	if req.Skills != nil {
		addSet("skills", req.Skills)
	}
	if req.Experience != nil {
		addSet("experience", *req.Experience)
	}
	if req.Category != nil {
		addSet("category", *req.Category)
	}
	if req.ApplicationDeadline != nil {
		addSet("application_deadline", *req.ApplicationDeadline)
	}
	if req.ContactEmail != nil {
		addSet("contact_email", *req.ContactEmail)
	}
	if req.IsActive != nil {
		addSet("is_active", *req.IsActive)
	}
	if req.CompanyLogo != nil {
		addSet("company_logo", *req.CompanyLogo)
	}

	if len(setClauses) == 0 {
		return nil, fmt.Errorf("no fields provided for update on job %s", req.ID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), len(args), jobColumns)

	job, err := scanJob(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Job not found for update with ID: %s\n", req.ID)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating job %s: %v\n", req.ID, err)
		return nil, fmt.Errorf("failed to update job %s: %w", req.ID, err)
	}

	log.Printf("Job updated successfully: %s", job.ID)
	return job, nil
}

// Delete removes a job by its ID.
func (r *JobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting job %s: %v\n", id, err)
		return fmt.Errorf("failed to delete job %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		log.Printf("Job not found for deletion with ID: %s\n", id)
		return storage.ErrNotFound
	}
	log.Printf("Job deleted successfully: %s", id)
	return nil
}

// AdjustApplicationCount adds delta to a job's application counter,
// clamping at zero.
func (r *JobRepo) AdjustApplicationCount(ctx context.Context, id uuid.UUID, delta int) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE jobs SET application_count = GREATEST(application_count + $1, 0), updated_at = NOW() WHERE id = $2`,
		delta, id)
	if err != nil {
		log.Printf("Error adjusting application count for job %s: %v\n", id, err)
		return fmt.Errorf("failed to adjust application count for job %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CountAll returns the total number of jobs, active or not.
func (r *JobRepo) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

// CountActive returns the number of active jobs.
func (r *JobRepo) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE is_active = TRUE`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active jobs: %w", err)
	}
	return count, nil
}

// CountDistinctActiveCompanies returns the number of distinct companies
// with at least one active job.
func (r *JobRepo) CountDistinctActiveCompanies(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(DISTINCT company) FROM jobs WHERE is_active = TRUE`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return count, nil
}
