package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Role Enum ---
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan Role: value is not string or []byte")
		}
	}
	v := Role(strVal)
	switch v {
	case RoleUser, RoleAdmin:
		*r = v
		return nil
	default:
		return fmt.Errorf("invalid Role value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// --- Job Type Enum ---
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeFreelance  JobType = "freelance"
	JobTypeInternship JobType = "internship"
)

// Scan implements the sql.Scanner interface for JobType
func (jt *JobType) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan JobType: value is not string or []byte")
		}
	}
	v := JobType(strVal)
	switch v {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeFreelance, JobTypeInternship:
		*jt = v
		return nil
	default:
		return fmt.Errorf("invalid JobType value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for JobType
func (jt JobType) Value() (driver.Value, error) {
	return string(jt), nil
}

// --- Experience Level Enum ---
type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceExecutive ExperienceLevel = "executive"
)

// Scan implements the sql.Scanner interface for ExperienceLevel
func (el *ExperienceLevel) Scan(value interface{}) error {
	if value == nil {
		// Optional column
		*el = ""
		return nil
	}
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan ExperienceLevel: value is not string or []byte")
		}
	}
	v := ExperienceLevel(strVal)
	switch v {
	case ExperienceEntry, ExperienceMid, ExperienceSenior, ExperienceExecutive, "":
		*el = v
		return nil
	default:
		return fmt.Errorf("invalid ExperienceLevel value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for ExperienceLevel
func (el ExperienceLevel) Value() (driver.Value, error) {
	return string(el), nil
}

// --- Application Status Enum ---
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Scan implements the sql.Scanner interface for ApplicationStatus
func (as *ApplicationStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		byteVal, ok := value.([]byte)
		if ok {
			strVal = string(byteVal)
		} else {
			return fmt.Errorf("failed to scan ApplicationStatus: value is not string or []byte")
		}
	}
	v := ApplicationStatus(strVal)
	switch v {
	case ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusAccepted, ApplicationStatusRejected:
		*as = v
		return nil
	default:
		return fmt.Errorf("invalid ApplicationStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for ApplicationStatus
func (as ApplicationStatus) Value() (driver.Value, error) {
	return string(as), nil
}

// IsValid reports whether the status is one of the known enum values.
func (as ApplicationStatus) IsValid() bool {
	switch as {
	case ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// User represents a registered account, either a regular applicant or an admin.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"` // unique
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Job represents a job posting created by an admin.
type Job struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	Title               string          `json:"title" db:"title"`
	Company             string          `json:"company" db:"company"`
	Location            string          `json:"location" db:"location"`
	Type                JobType         `json:"type" db:"type"`
	Salary              string          `json:"salary" db:"salary"` // free-form range, e.g. "90k-120k"
	Description         string          `json:"description" db:"description"`
	Requirements        string          `json:"requirements" db:"requirements"`
	Benefits            string          `json:"benefits" db:"benefits"`
	Skills              []string        `json:"skills" db:"skills"`
	Experience          ExperienceLevel `json:"experience" db:"experience"`
	Category            string          `json:"category" db:"category"`
	CompanyLogo         string          `json:"company_logo" db:"company_logo"` // uploaded filename
	ApplicationDeadline *time.Time      `json:"application_deadline,omitempty" db:"application_deadline"`
	ContactEmail        string          `json:"contact_email" db:"contact_email"`
	PostedBy            uuid.UUID       `json:"posted_by" db:"posted_by"`
	IsActive            bool            `json:"is_active" db:"is_active"`
	ApplicationCount    int             `json:"application_count" db:"application_count"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" db:"updated_at"`
}

// Application represents a user's application to a job.
// The (JobID, ApplicantID) pair is unique; a user cannot hold two
// applications for the same job.
type Application struct {
	ID             uuid.UUID         `json:"id" db:"id"`
	JobID          uuid.UUID         `json:"job_id" db:"job_id"`
	ApplicantID    uuid.UUID         `json:"applicant_id" db:"applicant_id"`
	Status         ApplicationStatus `json:"status" db:"status"`
	CoverLetter    string            `json:"cover_letter" db:"cover_letter"`
	Resume         string            `json:"resume" db:"resume"` // uploaded filename
	Portfolio      string            `json:"portfolio" db:"portfolio"`
	Linkedin       string            `json:"linkedin" db:"linkedin"`
	Github         string            `json:"github" db:"github"`
	ExpectedSalary string            `json:"expected_salary" db:"expected_salary"`
	Availability   string            `json:"availability" db:"availability"`
	AdditionalInfo string            `json:"additional_info" db:"additional_info"`
	AppliedAt      time.Time         `json:"applied_at" db:"applied_at"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" db:"updated_at"`
}
