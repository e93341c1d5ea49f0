package usecase

import (
	"context"
	"errors"
	"strings"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"

	"github.com/google/uuid"
)

type categoryUsecase struct {
	categoryRepo domain.CategoryRepository
	jobRepo      domain.JobRepository
	secLogger    *security.SecurityLogger
}

func NewCategoryUsecase(categoryRepo domain.CategoryRepository, jobRepo domain.JobRepository, secLogger *security.SecurityLogger) domain.CategoryUsecase {
	return &categoryUsecase{
		categoryRepo: categoryRepo,
		jobRepo:      jobRepo,
		secLogger:    secLogger,
	}
}

func (u *categoryUsecase) CreateCategory(ctx context.Context, actor domain.Actor, name, description string) (*domain.Category, error) {
	if err := domain.RequireRole(actor, domain.AccountTypeRecruiter); err != nil {
		return nil, denied(ctx, u.secLogger, actor, "category", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.BadRequest("Category name is required")
	}

	existing, err := u.categoryRepo.GetByName(ctx, name)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("Category already exists")
	}

	category := &domain.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if err := u.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Category already exists")
		}
		return nil, apperror.Internal(err)
	}
	return category, nil
}

func (u *categoryUsecase) ShowAllCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return categories, nil
}

func (u *categoryUsecase) GetJobsByCategory(ctx context.Context, categoryID string) ([]domain.JobView, error) {
	if strings.TrimSpace(categoryID) == "" {
		return nil, apperror.BadRequest("Category id is required")
	}
	category, err := u.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, repoErr(err, "Category not found")
	}
	return u.jobsOf(ctx, category)
}

// SearchJobsByCategory resolves the category by name, ignoring case.
func (u *categoryUsecase) SearchJobsByCategory(ctx context.Context, name string) ([]domain.JobView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.BadRequest("Category name is required")
	}
	category, err := u.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, repoErr(err, "Category not found")
	}
	return u.jobsOf(ctx, category)
}

func (u *categoryUsecase) jobsOf(ctx context.Context, category *domain.Category) ([]domain.JobView, error) {
	jobs, err := u.jobRepo.FetchViewsByCategory(ctx, category.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}
