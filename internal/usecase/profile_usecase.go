package usecase

import (
	"context"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type profileUsecase struct {
	userRepo    domain.UserRepository
	profileRepo domain.ProfileRepository
	jobRepo     domain.JobRepository
	tx          domain.TxManager
	validate    *validator.Validate
}

func NewProfileUsecase(
	userRepo domain.UserRepository,
	profileRepo domain.ProfileRepository,
	jobRepo domain.JobRepository,
	tx domain.TxManager,
	validate *validator.Validate,
) domain.ProfileUsecase {
	if validate == nil {
		validate = validator.New()
		validation.RegisterValidators(validate)
	}
	return &profileUsecase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		jobRepo:     jobRepo,
		tx:          tx,
		validate:    validate,
	}
}

// UpdateProfile applies the non-empty fields of patch to the actor's user and profile.
func (u *profileUsecase) UpdateProfile(ctx context.Context, actor domain.Actor, patch domain.ProfilePatch) (*domain.User, error) {
	if err := u.validate.Var(patch.ContactNo, "valid_phone"); err != nil {
		return nil, apperror.BadRequest("Contact number is invalid")
	}

	user, err := u.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, repoErr(err, "User not found")
	}

	profile := user.Profile
	if profile == nil {
		profile = &domain.Profile{ID: user.ProfileID}
	}
	patchString(&user.FirstName, patch.FirstName)
	patchString(&user.LastName, patch.LastName)
	patchOptional(&profile.DOB, patch.DOB)
	patchOptional(&profile.Gender, patch.Gender)
	patchOptional(&profile.ContactNo, patch.ContactNo)
	patchOptional(&profile.About, patch.About)
	patchOptional(&profile.City, patch.City)
	patchOptional(&profile.State, patch.State)
	patchOptional(&profile.Country, patch.Country)
	patchOptional(&profile.College, patch.College)

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.userRepo.UpdateNames(ctx, user.ID, user.FirstName, user.LastName); err != nil {
			return err
		}
		return u.profileRepo.Update(ctx, profile)
	})
	if err != nil {
		return nil, repoErr(err, "Profile not found")
	}

	updated, err := u.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, repoErr(err, "User not found")
	}
	return updated, nil
}

// GetAllUserDetails returns the actor with profile, posting ids and the jobs applied to.
func (u *profileUsecase) GetAllUserDetails(ctx context.Context, actor domain.Actor) (*domain.UserDetails, error) {
	user, err := u.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, repoErr(err, "User not found")
	}

	applied, err := u.jobRepo.FetchViewsByIDs(ctx, user.JobApplications)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.UserDetails{User: user, AppliedJobs: applied}, nil
}
