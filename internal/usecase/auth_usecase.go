package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/otp"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// maxCodeAttempts bounds regeneration when a fresh code collides with a stored one
const maxCodeAttempts = 10

// AuthDeps groups the collaborators of the auth usecase.
type AuthDeps struct {
	Users     domain.UserRepository
	Profiles  domain.ProfileRepository
	OTPs      domain.OTPRepository
	Tx        domain.TxManager
	Hasher    domain.PasswordHasher
	Tokens    domain.TokenIssuer
	Guard     domain.LoginGuard
	Mailer    domain.OTPSender
	Validate  *validator.Validate
	SecLogger *security.SecurityLogger

	TokenTTL time.Duration
	OTPTTL   time.Duration

	// Now and GenerateCode default to time.Now and otp.Generate
	Now          func() time.Time
	GenerateCode func() (string, error)
}

type authUsecase struct {
	AuthDeps
}

func NewAuthUsecase(deps AuthDeps) domain.AuthUsecase {
	deps.Now = clock(deps.Now)
	if deps.GenerateCode == nil {
		deps.GenerateCode = otp.Generate
	}
	if deps.Validate == nil {
		deps.Validate = validator.New()
		validation.RegisterValidators(deps.Validate)
	}
	return &authUsecase{AuthDeps: deps}
}

// RequestOTP issues a signup code for an unregistered email.
func (u *authUsecase) RequestOTP(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", apperror.BadRequest("Email is required")
	}
	if err := u.Validate.Var(email, "email"); err != nil {
		return "", apperror.BadRequest("Email is invalid")
	}

	exists, err := u.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return "", apperror.Internal(err)
	}
	if exists {
		return "", apperror.Conflict("User already exists")
	}

	code, err := u.uniqueCode(ctx)
	if err != nil {
		return "", apperror.Internal(err)
	}

	record := &domain.OTP{
		ID:       uuid.NewString(),
		Email:    email,
		Code:     code,
		IssuedAt: u.Now(),
	}
	if err := u.OTPs.Create(ctx, record); err != nil {
		return "", apperror.Internal(err)
	}
	u.SecLogger.LogOTPRequested(ctx, email)

	if u.Mailer != nil {
		if err := u.Mailer.SendOTP(email, code, u.OTPTTL); err != nil {
			logger.Log.Warn("failed to send otp email", "email", security.MaskEmail(email), "error", err)
		}
	}

	return code, nil
}

func (u *authUsecase) uniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := u.GenerateCode()
		if err != nil {
			return "", err
		}
		taken, err := u.OTPs.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", errors.New("could not generate an unused otp code")
}

// Register creates the profile and user once the latest OTP for the email checks out.
func (u *authUsecase) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if in.Email == "" || in.Username == "" || in.FirstName == "" || in.LastName == "" ||
		in.Password == "" || in.ConfirmPassword == "" || in.AccountType == "" || in.OTP == "" {
		return nil, apperror.BadRequest("All fields are required")
	}
	if !in.AccountType.Valid() {
		return nil, apperror.BadRequest("Account type must be candidate or recruiter")
	}
	if in.Password != in.ConfirmPassword {
		return nil, apperror.BadRequest("Password and Confirm Password do not match")
	}
	if err := u.Validate.Var(in.Username, "valid_username"); err != nil {
		return nil, apperror.BadRequest("Username must be 3-30 letters, digits, dots, underscores or dashes")
	}
	if err := u.Validate.Var(in.ContactNo, "valid_phone"); err != nil {
		return nil, apperror.BadRequest("Contact number is invalid")
	}

	exists, err := u.Users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("User already exists")
	}

	latest, err := u.OTPs.GetLatestByEmail(ctx, in.Email)
	if err != nil {
		return nil, repoErr(err, "OTP not found")
	}
	if latest.Code != in.OTP {
		return nil, apperror.BadRequest("The OTP is not valid")
	}
	if latest.ExpiredAt(u.Now(), u.OTPTTL) {
		return nil, apperror.Expired("OTP has expired")
	}

	digest, err := u.Hasher.Hash(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := u.Now()
	profile := &domain.Profile{
		ID:        uuid.NewString(),
		DOB:       optional(in.DOB),
		Gender:    optional(in.Gender),
		ContactNo: optional(in.ContactNo),
		City:      optional(in.City),
		State:     optional(in.State),
		Country:   optional(in.Country),
	}
	user := &domain.User{
		ID:              uuid.NewString(),
		Username:        in.Username,
		Email:           in.Email,
		PasswordHash:    digest,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		AccountType:     in.AccountType,
		ProfileID:       profile.ID,
		Profile:         profile,
		JobPostings:     []string{},
		JobApplications: []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = u.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.Profiles.Create(ctx, profile); err != nil {
			return err
		}
		return u.Users.Create(ctx, user)
	})
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, apperror.Conflict("Email or username is already registered")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return user, nil
}

// Login verifies credentials and issues a session token.
func (u *authUsecase) Login(ctx context.Context, in domain.LoginInput) (*domain.LoginResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, apperror.BadRequest("Email and password are required")
	}

	if u.Guard != nil {
		blocked, err := u.Guard.IsBlocked(ctx, email, in.IP)
		if err != nil {
			logger.Log.Warn("login guard unavailable", "error", err)
		}
		if blocked {
			u.SecLogger.LogLoginBlocked(ctx, email, in.IP, in.UserAgent)
			return nil, apperror.TooManyRequests("Too many failed login attempts. Please try again later")
		}
	}

	user, err := u.Users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if user == nil || !u.Hasher.Compare(in.Password, user.PasswordHash) {
		reason := "wrong_password"
		if user == nil {
			reason = "unknown_email"
		}
		u.SecLogger.LogLoginFailed(ctx, email, in.IP, in.UserAgent, reason)
		if u.Guard != nil {
			if _, _, err := u.Guard.RecordFailedAttempt(ctx, email, in.IP, in.UserAgent); err != nil {
				logger.Log.Warn("failed to record login attempt", "error", err)
			}
		}
		return nil, apperror.Unauthorized("Invalid email or password")
	}

	token, err := u.Tokens.Sign(user.Email, user.ID, string(user.AccountType), u.TokenTTL)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("sign token: %w", err))
	}

	if u.Guard != nil {
		if err := u.Guard.ClearAttempts(ctx, email, in.IP); err != nil {
			logger.Log.Warn("failed to clear login attempts", "error", err)
		}
	}
	u.SecLogger.LogLoginSuccess(ctx, user.ID, in.IP, in.UserAgent)

	return &domain.LoginResult{Token: token, ExpiresIn: u.TokenTTL, User: user}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.Users.GetByID(ctx, id)
	if err != nil {
		return nil, repoErr(err, "User not found")
	}
	return user, nil
}
