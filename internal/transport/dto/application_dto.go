package dto

import (
	"time"

	"jobverse/internal/models"

	"github.com/google/uuid"
)

// ApplyRequest binds the multipart application form. JobID comes from the
// path (POST /jobs/:id/apply) or the form body (POST /applications);
// ApplicantID and Resume are filled in by the handler.
type ApplyRequest struct {
	JobID          uuid.UUID `form:"-" json:"-"`
	ApplicantID    uuid.UUID `form:"-" json:"-"`
	CoverLetter    string    `form:"cover_letter"`
	Portfolio      string    `form:"portfolio" validate:"omitempty,max=500"`
	Linkedin       string    `form:"linkedin" validate:"omitempty,max=500"`
	Github         string    `form:"github" validate:"omitempty,max=500"`
	ExpectedSalary string    `form:"expected_salary" validate:"omitempty,max=100"`
	Availability   string    `form:"availability" validate:"omitempty,max=200"`
	AdditionalInfo string    `form:"additional_info"`
	Resume         string    `form:"-" json:"-"`
}

// CreateApplicationRecord is the storage-level shape for inserting an
// application.
type CreateApplicationRecord struct {
	JobID          uuid.UUID
	ApplicantID    uuid.UUID
	CoverLetter    string
	Resume         string
	Portfolio      string
	Linkedin       string
	Github         string
	ExpectedSalary string
	Availability   string
	AdditionalInfo string
}

// UpdateApplicationStatusRequest binds the admin status-change body.
type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,oneof=pending reviewed accepted rejected"`
}

// ListApplicationsQuery is the storage-level shape for the admin
// application listing. Search matches the applicant name and the job
// title/company; an empty Status means no status filter.
type ListApplicationsQuery struct {
	Search string
	Status models.ApplicationStatus
	Limit  int
	Offset int
}

// ListApplicationsRequest binds the admin application-listing query string.
// A status of "all" (or empty) disables the status filter.
type ListApplicationsRequest struct {
	Page   int    `form:"page,default=1" validate:"omitempty,gte=1"`
	Limit  int    `form:"limit,default=10" validate:"omitempty,gte=1,lte=100"`
	Search string `form:"search"`
	Status string `form:"status" validate:"omitempty,oneof=all pending reviewed accepted rejected"`
}

// ApplicationResponse is an application with its job and applicant
// populated.
type ApplicationResponse struct {
	ID             uuid.UUID                `json:"id"`
	Job            *JobSummary              `json:"job"`
	Applicant      *UserSummary             `json:"applicant"`
	Status         models.ApplicationStatus `json:"status"`
	CoverLetter    string                   `json:"cover_letter"`
	Resume         string                   `json:"resume"`
	Portfolio      string                   `json:"portfolio"`
	Linkedin       string                   `json:"linkedin"`
	Github         string                   `json:"github"`
	ExpectedSalary string                   `json:"expected_salary"`
	Availability   string                   `json:"availability"`
	AdditionalInfo string                   `json:"additional_info"`
	AppliedAt      time.Time                `json:"applied_at"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

// ApplicationListResponse is the paginated admin application listing.
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	TotalPages   int                   `json:"totalPages"`
	CurrentPage  int                   `json:"currentPage"`
	Total        int                   `json:"total"`
}

// AdminStatsResponse is the admin dashboard stats payload.
type AdminStatsResponse struct {
	TotalUsers          int `json:"totalUsers"`
	TotalJobs           int `json:"totalJobs"`
	TotalApplications   int `json:"totalApplications"`
	PendingApplications int `json:"pendingApplications"`
}
