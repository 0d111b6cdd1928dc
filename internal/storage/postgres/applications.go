// internal/storage/postgres/applications.go
package postgres

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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationColumns = `id, job_id, applicant_id, status, cover_letter, resume, portfolio,
	linkedin, github, expected_salary, availability, additional_info,
	applied_at, created_at, updated_at`

// prefixed variant for queries that join other tables.
const applicationColumnsQualified = `a.id, a.job_id, a.applicant_id, a.status, a.cover_letter,
	a.resume, a.portfolio, a.linkedin, a.github, a.expected_salary,
	a.availability, a.additional_info, a.applied_at, a.created_at, a.updated_at`

// ApplicationRepo implements the storage.ApplicationRepository interface
// using PostgreSQL.
type ApplicationRepo struct {
	db Querier
}

// NewApplicationRepo creates a new ApplicationRepo.
func NewApplicationRepo(db *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

// WithTx creates a new ApplicationRepo bound to the transaction.
func (r *ApplicationRepo) WithTx(tx pgx.Tx) storage.ApplicationRepository {
	return &ApplicationRepo{db: tx}
}

var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

func scanApplication(row pgx.Row) (*models.Application, error) {
	var a models.Application
	err := row.Scan(
		&a.ID, &a.JobID, &a.ApplicantID, &a.Status, &a.CoverLetter, &a.Resume,
		&a.Portfolio, &a.Linkedin, &a.Github, &a.ExpectedSalary,
		&a.Availability, &a.AdditionalInfo, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectApplications(rows pgx.Rows) ([]models.Application, error) {
	apps, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Application])
	if err != nil {
		return nil, fmt.Errorf("failed to scan applications: %w", err)
	}
	if apps == nil {
		apps = []models.Application{}
	}
	return apps, nil
}

// Create inserts a new application with status pending. The unique
// (job_id, applicant_id) index surfaces duplicate applications as
// storage.ErrConflict.
func (r *ApplicationRepo) Create(ctx context.Context, req *dto.CreateApplicationRecord) (*models.Application, error) {
	query := `
		INSERT INTO applications (id, job_id, applicant_id, status, cover_letter, resume,
			portfolio, linkedin, github, expected_salary, availability, additional_info,
			applied_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW(), NOW())
		RETURNING ` + applicationColumns

	row := r.db.QueryRow(ctx, query,
		uuid.New(), req.JobID, req.ApplicantID, models.ApplicationStatusPending,
		req.CoverLetter, req.Resume, req.Portfolio, req.Linkedin, req.Github,
		req.ExpectedSalary, req.Availability, req.AdditionalInfo,
	)

	app, err := scanApplication(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				log.Printf("Duplicate application for job %s by user %s\n", req.JobID, req.ApplicantID)
				return nil, fmt.Errorf("already applied to job: %w", storage.ErrConflict)
			case pgForeignKeyViolation:
				return nil, fmt.Errorf("referenced job or user does not exist: %w", storage.ErrNotFound)
			}
		}
		log.Printf("Error creating application: %v\n", err)
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	log.Printf("Application created successfully with ID: %s", app.ID)
	return app, nil
}

// GetByID retrieves a specific application by its ID.
func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Application not found with ID: %s\n", id)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error scanning application by ID %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to get application by ID %s: %w", id, err)
	}
	return app, nil
}

// GetByJobAndApplicant retrieves the application a user holds for a job,
// or storage.ErrNotFound when none exists.
func (r *ApplicationRepo) GetByJobAndApplicant(ctx context.Context, jobID, applicantID uuid.UUID) (*models.Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND applicant_id = $2`,
		jobID, applicantID)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		log.Printf("Error querying application for job %s and user %s: %v\n", jobID, applicantID, err)
		return nil, fmt.Errorf("failed to get application by job and applicant: %w", err)
	}
	return app, nil
}

// ListByApplicant retrieves a user's applications, newest first.
func (r *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]models.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE applicant_id = $1 ORDER BY created_at DESC`,
		applicantID)
	if err != nil {
		log.Printf("Error querying applications by applicant %s: %v\n", applicantID, err)
		return nil, fmt.Errorf("failed to query applications by applicant: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// ListByJob retrieves a job's applications, newest first.
func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY created_at DESC`,
		jobID)
	if err != nil {
		log.Printf("Error querying applications by job %s: %v\n", jobID, err)
		return nil, fmt.Errorf("failed to query applications by job: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// adminListClauses builds the FROM/WHERE tail shared by List and Count.
// Search needs the joined applicant and job rows, mirroring the populated
// search of the admin dashboard.
func adminListClauses(q *dto.ListApplicationsQuery, args *[]interface{}) string {
	clause := ` FROM applications a
		JOIN users u ON u.id = a.applicant_id
		JOIN jobs j ON j.id = a.job_id`

	var conditions []string
	if q.Search != "" {
		*args = append(*args, "%"+q.Search+"%")
		n := len(*args)
		conditions = append(conditions,
			fmt.Sprintf("(u.name ILIKE $%d OR j.title ILIKE $%d OR j.company ILIKE $%d)", n, n, n))
	}
	if q.Status != "" {
		*args = append(*args, q.Status)
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", len(*args)))
	}

	if len(conditions) > 0 {
		clause += " WHERE " + conditions[0]
		for _, c := range conditions[1:] {
			clause += " AND " + c
		}
	}
	return clause
}

// List retrieves applications for the admin listing, newest first.
func (r *ApplicationRepo) List(ctx context.Context, q *dto.ListApplicationsQuery) ([]models.Application, error) {
	args := []interface{}{}
	query := `SELECT ` + applicationColumnsQualified + adminListClauses(q, &args) +
		" ORDER BY a.created_at DESC"

	if q.Limit > 0 {
		args = append(args, q.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, q.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying applications: %v\n", err)
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// Count returns the number of applications matching the admin listing query.
func (r *ApplicationRepo) Count(ctx context.Context, q *dto.ListApplicationsQuery) (int, error) {
	args := []interface{}{}
	query := `SELECT COUNT(*)` + adminListClauses(q, &args)

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		log.Printf("Error counting applications: %v\n", err)
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

// ListRecent retrieves the newest applications.
func (r *ApplicationRepo) ListRecent(ctx context.Context, limit int) ([]models.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		log.Printf("Error querying recent applications: %v\n", err)
		return nil, fmt.Errorf("failed to query recent applications: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// UpdateStatus sets an application's status unconditionally; any enum value
// is accepted at any current state.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) (*models.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING `+applicationColumns,
		status, id)

	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Application not found for status update with ID: %s\n", id)
			return nil, storage.ErrNotFound
		}
		log.Printf("Error updating application status for %s: %v\n", id, err)
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	return app, nil
}

// Delete removes an application by its ID.
func (r *ApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting application %s: %v\n", id, err)
		return fmt.Errorf("failed to delete application %s: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	log.Printf("Application deleted successfully: %s", id)
	return nil
}

// DeleteByJob removes all applications for a job.
func (r *ApplicationRepo) DeleteByJob(ctx context.Context, jobID uuid.UUID) (int, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE job_id = $1`, jobID)
	if err != nil {
		log.Printf("Error deleting applications for job %s: %v\n", jobID, err)
		return 0, fmt.Errorf("failed to delete applications for job %s: %w", jobID, err)
	}
	return int(cmdTag.RowsAffected()), nil
}

// DeleteByApplicant removes all applications by a user and returns the
// affected job IDs, one entry per deleted application.
func (r *ApplicationRepo) DeleteByApplicant(ctx context.Context, applicantID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`DELETE FROM applications WHERE applicant_id = $1 RETURNING job_id`, applicantID)
	if err != nil {
		log.Printf("Error deleting applications for user %s: %v\n", applicantID, err)
		return nil, fmt.Errorf("failed to delete applications for user %s: %w", applicantID, err)
	}
	defer rows.Close()

	jobIDs, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to collect affected job IDs: %w", err)
	}
	return jobIDs, nil
}

// CountAll returns the total number of applications.
func (r *ApplicationRepo) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of applications with the given status.
func (r *ApplicationRepo) CountByStatus(ctx context.Context, status models.ApplicationStatus) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE status = $1`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count applications by status: %w", err)
	}
	return count, nil
}
