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
)

type applicationService struct {
	appRepo  storage.ApplicationRepository
	jobRepo  storage.JobRepository
	userRepo storage.UserRepository
	txm      storage.TxManager
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(appRepo storage.ApplicationRepository, jobRepo storage.JobRepository, userRepo storage.UserRepository, txm storage.TxManager) ApplicationService {
	return &applicationService{
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		userRepo: userRepo,
		txm:      txm,
	}
}

// Apply files an application and bumps the job's application counter in the
// same transaction, keeping the counter consistent with the rows it counts.
func (s *applicationService) Apply(ctx context.Context, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	var created *models.Application
	err := s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
		jobRepo := s.jobRepo.WithTx(tx)
		appRepo := s.appRepo.WithTx(tx)

		job, err := jobRepo.GetByID(ctx, req.JobID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%w: job not found", ErrNotFound)
			}
			return err
		}
		if !job.IsActive {
			return fmt.Errorf("%w: this job is no longer accepting applications", ErrValidation)
		}

		if _, err := appRepo.GetByJobAndApplicant(ctx, req.JobID, req.ApplicantID); err == nil {
			return fmt.Errorf("%w: you have already applied to this job", ErrConflict)
		} else if !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		created, err = appRepo.Create(ctx, &dto.CreateApplicationRecord{
			JobID:          req.JobID,
			ApplicantID:    req.ApplicantID,
			CoverLetter:    req.CoverLetter,
			Resume:         req.Resume,
			Portfolio:      req.Portfolio,
			Linkedin:       req.Linkedin,
			Github:         req.Github,
			ExpectedSalary: req.ExpectedSalary,
			Availability:   req.Availability,
			AdditionalInfo: req.AdditionalInfo,
		})
		if err != nil {
			// The unique constraint closes the race between the
			// duplicate check above and the insert.
			if errors.Is(err, storage.ErrConflict) {
				return fmt.Errorf("%w: you have already applied to this job", ErrConflict)
			}
			return err
		}

		return jobRepo.AdjustApplicationCount(ctx, req.JobID, 1)
	})
	if err != nil {
		if isServiceError(err) {
			return nil, err
		}
		log.Printf("ApplicationService: Error applying to job %s: %v", req.JobID, err)
		return nil, fmt.Errorf("internal error submitting application: %w", err)
	}

	log.Printf("ApplicationService: User %s applied to job %s", req.ApplicantID, req.JobID)
	return s.populateOne(ctx, created)
}

func (s *applicationService) Get(ctx context.Context, id uuid.UUID) (*dto.ApplicationResponse, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "fetching application")
	}
	return s.populateOne(ctx, app)
}

func (s *applicationService) ListMine(ctx context.Context, applicantID uuid.UUID) ([]dto.ApplicationResponse, error) {
	apps, err := s.appRepo.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, mapRepoError(err, "listing applications")
	}
	populated, err := populateApplications(ctx, s.jobRepo, s.userRepo, apps)
	if err != nil {
		return nil, mapRepoError(err, "resolving application references")
	}
	return populated, nil
}

func (s *applicationService) ListForJob(ctx context.Context, jobID uuid.UUID) ([]dto.ApplicationResponse, error) {
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, mapRepoError(err, "fetching job")
	}
	apps, err := s.appRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, mapRepoError(err, "listing job applications")
	}
	populated, err := populateApplications(ctx, s.jobRepo, s.userRepo, apps)
	if err != nil {
		return nil, mapRepoError(err, "resolving application references")
	}
	return populated, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) (*dto.ApplicationResponse, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid application status %q", ErrValidation, status)
	}
	app, err := s.appRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, mapRepoError(err, "updating application status")
	}
	log.Printf("ApplicationService: Application %s moved to status %s", id, status)
	return s.populateOne(ctx, app)
}

// Delete removes an application and decrements the job's counter in the
// same transaction. Owners may withdraw their own applications; admins may
// remove any.
func (s *applicationService) Delete(ctx context.Context, id, actorID uuid.UUID, actorRole models.Role) error {
	err := s.txm.WithinTx(ctx, func(tx pgx.Tx) error {
		appRepo := s.appRepo.WithTx(tx)

		app, err := appRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%w: application not found", ErrNotFound)
			}
			return err
		}
		if actorRole != models.RoleAdmin && app.ApplicantID != actorID {
			return fmt.Errorf("%w: you can only withdraw your own applications", ErrForbidden)
		}

		if err := appRepo.Delete(ctx, id); err != nil {
			return err
		}
		return s.jobRepo.WithTx(tx).AdjustApplicationCount(ctx, app.JobID, -1)
	})
	if err != nil {
		if isServiceError(err) {
			return err
		}
		log.Printf("ApplicationService: Error deleting application %s: %v", id, err)
		return fmt.Errorf("internal error deleting application: %w", err)
	}
	return nil
}

func (s *applicationService) populateOne(ctx context.Context, app *models.Application) (*dto.ApplicationResponse, error) {
	populated, err := populateApplications(ctx, s.jobRepo, s.userRepo, []models.Application{*app})
	if err != nil {
		return nil, mapRepoError(err, "resolving application references")
	}
	return &populated[0], nil
}
