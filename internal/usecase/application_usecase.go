package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"

	"github.com/google/uuid"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	secLogger       *security.SecurityLogger
	now             func() time.Time
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	secLogger *security.SecurityLogger,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		secLogger:       secLogger,
		now:             time.Now,
	}
}

// ApplyToJob records one application per job and candidate
func (uc *applicationUsecase) ApplyToJob(ctx context.Context, actor domain.Actor, in domain.ApplyInput) (*domain.Application, error) {
	// 1. Only candidates apply
	if err := domain.RequireRole(actor, domain.AccountTypeCandidate); err != nil {
		return nil, denied(ctx, uc.secLogger, actor, "application", err)
	}

	// 2. Job and resume are required
	jobID := strings.TrimSpace(in.JobID)
	resume := strings.TrimSpace(in.Resume)
	if jobID == "" || resume == "" {
		return nil, apperror.BadRequest("Job id and resume are required")
	}

	// 3. Validate job exists
	if _, err := uc.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, repoErr(err, "Job not found")
	}

	// 4. Check for duplicate application; the unique index catches races
	exists, err := uc.applicationRepo.CheckExists(ctx, jobID, actor.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already applied to this job")
	}

	// 5. Create application
	now := uc.now()
	app := &domain.Application{
		ID:          uuid.NewString(),
		JobID:       jobID,
		CandidateID: actor.ID,
		CoverLetter: optional(in.CoverLetter),
		Resume:      resume,
		AppliedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("You have already applied to this job")
		}
		return nil, repoErr(err, "Job not found")
	}

	return app, nil
}

// UpdateApplication lets the applicant replace the cover letter or resume
func (uc *applicationUsecase) UpdateApplication(ctx context.Context, actor domain.Actor, applicationID string, patch domain.ApplicationPatch) (*domain.Application, error) {
	app, err := uc.ownApplication(ctx, actor, applicationID)
	if err != nil {
		return nil, err
	}

	patchOptional(&app.CoverLetter, patch.CoverLetter)
	patchString(&app.Resume, patch.Resume)
	app.UpdatedAt = uc.now()

	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		return nil, repoErr(err, "Application not found")
	}
	return app, nil
}

func (uc *applicationUsecase) WithdrawApplication(ctx context.Context, actor domain.Actor, applicationID string) error {
	app, err := uc.ownApplication(ctx, actor, applicationID)
	if err != nil {
		return err
	}
	return repoErr(uc.applicationRepo.Delete(ctx, app.ID), "Application not found")
}

func (uc *applicationUsecase) ownApplication(ctx context.Context, actor domain.Actor, applicationID string) (*domain.Application, error) {
	if err := domain.RequireRole(actor, domain.AccountTypeCandidate); err != nil {
		return nil, denied(ctx, uc.secLogger, actor, "application", err)
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, repoErr(err, "Application not found")
	}
	if err := domain.RequireOwnership(app.CandidateID, actor.ID, "application"); err != nil {
		return nil, denied(ctx, uc.secLogger, actor, "application:"+applicationID, err)
	}
	return app, nil
}

// GetApplicationsByJob lists a job's applications with candidates populated
func (uc *applicationUsecase) GetApplicationsByJob(ctx context.Context, actor domain.Actor, jobID string) ([]domain.ApplicationView, error) {
	if err := domain.RequireRole(actor, domain.AccountTypeRecruiter); err != nil {
		return nil, denied(ctx, uc.secLogger, actor, "applications", err)
	}
	if _, err := uc.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, repoErr(err, "Job not found")
	}

	apps, err := uc.applicationRepo.FetchByJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// GetApplicationsByUser returns all applications of the current candidate
func (uc *applicationUsecase) GetApplicationsByUser(ctx context.Context, actor domain.Actor) ([]domain.ApplicationView, error) {
	if err := domain.RequireRole(actor, domain.AccountTypeCandidate); err != nil {
		return nil, denied(ctx, uc.secLogger, actor, "applications", err)
	}

	apps, err := uc.applicationRepo.FetchByCandidate(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (uc *applicationUsecase) GetApplicationDetails(ctx context.Context, applicationID string) (*domain.ApplicationView, error) {
	app, err := uc.applicationRepo.GetView(ctx, applicationID)
	if err != nil {
		return nil, repoErr(err, "Application not found")
	}
	return app, nil
}
