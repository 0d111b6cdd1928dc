package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"jobverse/internal/models"
	"jobverse/internal/storage"
	"jobverse/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// statsCacheTTL bounds how stale the cached dashboard counters can get.
const statsCacheTTL = 30 * time.Second

// mapRepoError translates storage sentinel errors into service sentinels.
// Anything unexpected is logged and wrapped as an internal error so handlers
// never leak driver details to clients.
func mapRepoError(err error, operation string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	case errors.Is(err, storage.ErrDuplicateEmail):
		return fmt.Errorf("%w: email already registered", ErrConflict)
	case errors.Is(err, storage.ErrConflict):
		return fmt.Errorf("%w: %s", ErrConflict, operation)
	}
	log.Printf("Storage error during %s: %v", operation, err)
	return fmt.Errorf("internal error during %s: %w", operation, err)
}

// isServiceError reports whether err already carries one of the service
// sentinels, so callers don't double-wrap errors coming out of a
// transaction closure.
func isServiceError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidCredentials)
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserSummary(u *models.User) *dto.UserSummary {
	return &dto.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toJobResponse(j *models.Job, poster *dto.UserSummary) dto.JobResponse {
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}
	return dto.JobResponse{
		ID:                  j.ID,
		Title:               j.Title,
		Company:             j.Company,
		Location:            j.Location,
		Type:                j.Type,
		Salary:              j.Salary,
		Description:         j.Description,
		Requirements:        j.Requirements,
		Benefits:            j.Benefits,
		Skills:              skills,
		Experience:          j.Experience,
		Category:            j.Category,
		CompanyLogo:         j.CompanyLogo,
		ApplicationDeadline: j.ApplicationDeadline,
		ContactEmail:        j.ContactEmail,
		PostedBy:            poster,
		IsActive:            j.IsActive,
		ApplicationCount:    j.ApplicationCount,
		CreatedAt:           j.CreatedAt,
		UpdatedAt:           j.UpdatedAt,
	}
}

func toJobSummary(j *models.Job, poster *dto.UserSummary) *dto.JobSummary {
	return &dto.JobSummary{
		ID:       j.ID,
		Title:    j.Title,
		Company:  j.Company,
		Location: j.Location,
		PostedBy: poster,
	}
}

func toApplicationResponse(a *models.Application, job *dto.JobSummary, applicant *dto.UserSummary) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:             a.ID,
		Job:            job,
		Applicant:      applicant,
		Status:         a.Status,
		CoverLetter:    a.CoverLetter,
		Resume:         a.Resume,
		Portfolio:      a.Portfolio,
		Linkedin:       a.Linkedin,
		Github:         a.Github,
		ExpectedSalary: a.ExpectedSalary,
		Availability:   a.Availability,
		AdditionalInfo: a.AdditionalInfo,
		AppliedAt:      a.AppliedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// userSummariesByID fetches the given users in one batch and indexes them by
// ID. Missing IDs simply have no entry; callers render those references as
// null rather than failing the whole response.
func userSummariesByID(ctx context.Context, repo storage.UserRepository, ids []uuid.UUID) (map[uuid.UUID]*dto.UserSummary, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return map[uuid.UUID]*dto.UserSummary{}, nil
	}
	users, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]*dto.UserSummary, len(users))
	for i := range users {
		out[users[i].ID] = toUserSummary(&users[i])
	}
	return out, nil
}

// populateJobs resolves the posters for a page of jobs in a single batch
// query and assembles the full responses.
func populateJobs(ctx context.Context, userRepo storage.UserRepository, jobs []models.Job) ([]dto.JobResponse, error) {
	posterIDs := make([]uuid.UUID, 0, len(jobs))
	for i := range jobs {
		posterIDs = append(posterIDs, jobs[i].PostedBy)
	}
	posters, err := userSummariesByID(ctx, userRepo, posterIDs)
	if err != nil {
		return nil, err
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, toJobResponse(&jobs[i], posters[jobs[i].PostedBy]))
	}
	return out, nil
}

// populateApplications resolves the referenced jobs, applicants and job
// posters for a page of applications using batch queries.
func populateApplications(ctx context.Context, jobRepo storage.JobRepository, userRepo storage.UserRepository, apps []models.Application) ([]dto.ApplicationResponse, error) {
	jobIDs := make([]uuid.UUID, 0, len(apps))
	userIDs := make([]uuid.UUID, 0, len(apps))
	for i := range apps {
		jobIDs = append(jobIDs, apps[i].JobID)
		userIDs = append(userIDs, apps[i].ApplicantID)
	}

	jobsByID := make(map[uuid.UUID]*models.Job)
	jobIDs = dedupeIDs(jobIDs)
	if len(jobIDs) > 0 {
		jobs, err := jobRepo.GetByIDs(ctx, jobIDs)
		if err != nil {
			return nil, err
		}
		for i := range jobs {
			jobsByID[jobs[i].ID] = &jobs[i]
			userIDs = append(userIDs, jobs[i].PostedBy)
		}
	}

	users, err := userSummariesByID(ctx, userRepo, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ApplicationResponse, 0, len(apps))
	for i := range apps {
		var jobSummary *dto.JobSummary
		if job, ok := jobsByID[apps[i].JobID]; ok {
			jobSummary = toJobSummary(job, users[job.PostedBy])
		}
		out = append(out, toApplicationResponse(&apps[i], jobSummary, users[apps[i].ApplicantID]))
	}
	return out, nil
}

// cacheGet loads a cached JSON value into dest. A nil client, a miss or a
// decode failure all report false; the caller recomputes.
func cacheGet(ctx context.Context, rdb *redis.Client, key string, dest interface{}) bool {
	if rdb == nil {
		return false
	}
	raw, err := rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Cache: failed to get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("Cache: failed to decode %s: %v", key, err)
		return false
	}
	return true
}

// cacheSet stores v as JSON under key with the given TTL. Failures are
// logged and otherwise ignored; the cache is best effort.
func cacheSet(ctx context.Context, rdb *redis.Client, key string, v interface{}, ttl time.Duration) {
	if rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("Cache: failed to encode %s: %v", key, err)
		return
	}
	if err := rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("Cache: failed to set %s: %v", key, err)
	}
}
