package dto

import (
	"time"

	"jobverse/internal/models"

	"github.com/google/uuid"
)

// ListJobsRequest binds the public job-listing query string.
type ListJobsRequest struct {
	Page     int    `form:"page,default=1" validate:"omitempty,gte=1"`
	Limit    int    `form:"limit,default=10" validate:"omitempty,gte=1,lte=100"`
	Search   string `form:"search"`
	Location string `form:"location"`
	Type     string `form:"type" validate:"omitempty,oneof=full-time part-time contract freelance internship"`
	Category string `form:"category"`
}

// ListJobsQuery is the storage-level shape for job listings. ActiveOnly is
// true for the public listing and false for the admin one.
type ListJobsQuery struct {
	Search     string // matched against title, company, description
	Location   string
	Type       string
	Category   string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// CreateJobRequest binds the multipart job-creation form. PostedBy and
// CompanyLogo are filled in by the handler, not the client.
type CreateJobRequest struct {
	Title               string     `form:"title" validate:"required,max=200"`
	Company             string     `form:"company" validate:"required,max=200"`
	Location            string     `form:"location" validate:"required,max=200"`
	Type                string     `form:"type" validate:"required,oneof=full-time part-time contract freelance internship"`
	Salary              string     `form:"salary" validate:"omitempty,max=100"`
	Description         string     `form:"description" validate:"required"`
	Requirements        string     `form:"requirements"`
	Benefits            string     `form:"benefits"`
	Skills              []string   `form:"skills"`
	Experience          string     `form:"experience" validate:"omitempty,oneof=entry mid senior executive"`
	Category            string     `form:"category" validate:"omitempty,max=100"`
	ApplicationDeadline *time.Time `form:"application_deadline" time_format:"2006-01-02"`
	ContactEmail        string     `form:"contact_email" validate:"omitempty,email"`
	IsActive            *bool      `form:"is_active"`

	PostedBy    uuid.UUID `form:"-" json:"-"`
	CompanyLogo string    `form:"-" json:"-"`
}

// UpdateJobRequest is a partial update; nil fields are left untouched.
type UpdateJobRequest struct {
	ID                  uuid.UUID  `form:"-" json:"-"`
	Title               *string    `form:"title" validate:"omitempty,max=200"`
	Company             *string    `form:"company" validate:"omitempty,max=200"`
	Location            *string    `form:"location" validate:"omitempty,max=200"`
	Type                *string    `form:"type" validate:"omitempty,oneof=full-time part-time contract freelance internship"`
	Salary              *string    `form:"salary" validate:"omitempty,max=100"`
	Description         *string    `form:"description"`
	Requirements        *string    `form:"requirements"`
	Benefits            *string    `form:"benefits"`
	Skills              []string   `form:"skills"`
	Experience          *string    `form:"experience" validate:"omitempty,oneof=entry mid senior executive"`
	Category            *string    `form:"category" validate:"omitempty,max=100"`
	ApplicationDeadline *time.Time `form:"application_deadline" time_format:"2006-01-02"`
	ContactEmail        *string    `form:"contact_email" validate:"omitempty,email"`
	IsActive            *bool      `form:"is_active"`
	CompanyLogo         *string    `form:"-" json:"-"`
}

// JobResponse is a job with its poster populated.
type JobResponse struct {
	ID                  uuid.UUID              `json:"id"`
	Title               string                 `json:"title"`
	Company             string                 `json:"company"`
	Location            string                 `json:"location"`
	Type                models.JobType         `json:"type"`
	Salary              string                 `json:"salary"`
	Description         string                 `json:"description"`
	Requirements        string                 `json:"requirements"`
	Benefits            string                 `json:"benefits"`
	Skills              []string               `json:"skills"`
	Experience          models.ExperienceLevel `json:"experience"`
	Category            string                 `json:"category"`
	CompanyLogo         string                 `json:"company_logo"`
	ApplicationDeadline *time.Time             `json:"application_deadline,omitempty"`
	ContactEmail        string                 `json:"contact_email"`
	PostedBy            *UserSummary           `json:"posted_by"`
	IsActive            bool                   `json:"is_active"`
	ApplicationCount    int                    `json:"application_count"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

// JobSummary is the populated short form embedded in application responses.
type JobSummary struct {
	ID       uuid.UUID    `json:"id"`
	Title    string       `json:"title"`
	Company  string       `json:"company"`
	Location string       `json:"location,omitempty"`
	PostedBy *UserSummary `json:"posted_by,omitempty"`
}

// JobListResponse is the paginated job listing.
type JobListResponse struct {
	Jobs        []JobResponse `json:"jobs"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	Total       int           `json:"total"`
}

// JobStatsResponse is the public job-board stats payload.
type JobStatsResponse struct {
	TotalJobs         int `json:"totalJobs"`
	TotalCompanies    int `json:"totalCompanies"`
	TotalApplications int `json:"totalApplications"`
}
