package usecase

import (
	"context"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type jobUsecase struct {
	jobRepo      domain.JobRepository
	categoryRepo domain.CategoryRepository
	appRepo      domain.ApplicationRepository
	tx           domain.TxManager
	secLogger    *security.SecurityLogger
	now          func() time.Time
}

func NewJobUsecase(
	jobRepo domain.JobRepository,
	categoryRepo domain.CategoryRepository,
	appRepo domain.ApplicationRepository,
	tx domain.TxManager,
	secLogger *security.SecurityLogger,
) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:      jobRepo,
		categoryRepo: categoryRepo,
		appRepo:      appRepo,
		tx:           tx,
		secLogger:    secLogger,
		now:          time.Now,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, actor domain.Actor, in domain.JobInput) (*domain.Job, error) {
	if err := domain.RequireRole(actor, domain.AccountTypeRecruiter); err != nil {
		return nil, denied(ctx, u.secLogger, actor, "job", err)
	}

	skills := cleanList(in.Skills)
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	company := strings.TrimSpace(in.Company)
	location := strings.TrimSpace(in.Location)
	categoryID := strings.TrimSpace(in.CategoryID)
	if title == "" || description == "" || company == "" || location == "" || categoryID == "" || len(skills) == 0 {
		return nil, apperror.BadRequest("Title, description, company, location, category and skills are required")
	}

	if _, err := u.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, repoErr(err, "Category not found")
	}

	now := u.now()
	job := &domain.Job{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Company:     company,
		Location:    location,
		Salary:      optional(in.Salary),
		Skills:      skills,
		RecruiterID: actor.ID,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, repoErr(err, "Category not found")
	}
	return job, nil
}

// UpdateJob applies the non-empty fields of patch. Only the posting recruiter may update.
func (u *jobUsecase) UpdateJob(ctx context.Context, actor domain.Actor, jobID string, patch domain.JobPatch) (*domain.Job, error) {
	if err := domain.RequireRole(actor, domain.AccountTypeRecruiter); err != nil {
		return nil, denied(ctx, u.secLogger, actor, "job", err)
	}

	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, repoErr(err, "Job not found")
	}
	if err := domain.RequireOwnership(job.RecruiterID, actor.ID, "job"); err != nil {
		return nil, denied(ctx, u.secLogger, actor, "job:"+jobID, err)
	}

	if categoryID := strings.TrimSpace(patch.CategoryID); categoryID != "" {
		if _, err := u.categoryRepo.GetByID(ctx, categoryID); err != nil {
			return nil, repoErr(err, "Category not found")
		}
		job.CategoryID = categoryID
	}
	patchString(&job.Title, patch.Title)
	patchString(&job.Description, patch.Description)
	patchString(&job.Company, patch.Company)
	patchString(&job.Location, patch.Location)
	patchOptional(&job.Salary, patch.Salary)
	if skills := cleanList(patch.Skills); len(skills) > 0 {
		job.Skills = skills
	}
	job.UpdatedAt = u.now()

	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, repoErr(err, "Job not found")
	}
	return job, nil
}

// DeleteJob removes the job and all of its applications in one transaction.
func (u *jobUsecase) DeleteJob(ctx context.Context, actor domain.Actor, jobID string) (int64, error) {
	if err := domain.RequireRole(actor, domain.AccountTypeRecruiter); err != nil {
		return 0, denied(ctx, u.secLogger, actor, "job", err)
	}

	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return 0, repoErr(err, "Job not found")
	}
	if err := domain.RequireOwnership(job.RecruiterID, actor.ID, "job"); err != nil {
		return 0, denied(ctx, u.secLogger, actor, "job:"+jobID, err)
	}

	var removed int64
	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		n, err := u.appRepo.DeleteByJob(ctx, job.ID)
		if err != nil {
			return err
		}
		removed = n
		return u.jobRepo.Delete(ctx, job.ID)
	})
	if err != nil {
		return 0, repoErr(err, "Job not found")
	}
	return removed, nil
}

func (u *jobUsecase) GetAllJobs(ctx context.Context, page, pageSize int) ([]domain.JobView, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	offset := (page - 1) * pageSize

	jobs, total, err := u.jobRepo.FetchViews(ctx, pageSize, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return jobs, total, nil
}

func (u *jobUsecase) GetJobDetails(ctx context.Context, jobID string) (*domain.JobView, error) {
	job, err := u.jobRepo.GetView(ctx, jobID)
	if err != nil {
		return nil, repoErr(err, "Job not found")
	}
	return job, nil
}
