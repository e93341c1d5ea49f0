package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock collaborators
type MockOTPRepo struct {
	mock.Mock
}

func (m *MockOTPRepo) Create(ctx context.Context, otp *domain.OTP) error {
	return m.Called(ctx, otp).Error(0)
}

func (m *MockOTPRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockOTPRepo) GetLatestByEmail(ctx context.Context, email string) (*domain.OTP, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OTP), args.Error(1)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Sign(email, id, accountType string, ttl time.Duration) (string, error) {
	args := m.Called(email, id, accountType, ttl)
	return args.String(0), args.Error(1)
}

type MockLoginGuard struct {
	mock.Mock
}

func (m *MockLoginGuard) IsBlocked(ctx context.Context, email, ip string) (bool, error) {
	args := m.Called(ctx, email, ip)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoginGuard) RecordFailedAttempt(ctx context.Context, email, ip, userAgent string) (bool, int, error) {
	args := m.Called(ctx, email, ip, userAgent)
	return args.Bool(0), args.Int(1), args.Error(2)
}

func (m *MockLoginGuard) ClearAttempts(ctx context.Context, email, ip string) error {
	return m.Called(ctx, email, ip).Error(0)
}

type MockOTPSender struct {
	mock.Mock
}

func (m *MockOTPSender) SendOTP(to, code string, expiresIn time.Duration) error {
	return m.Called(to, code, expiresIn).Error(0)
}

type authFixture struct {
	store    *memStore
	otps     *MockOTPRepo
	profiles *MockProfileRepo
	tokens   *MockTokenIssuer
	guard    *MockLoginGuard
	now      time.Time
	uc       domain.AuthUsecase
}

func newAuthFixture(mutate func(*usecase.AuthDeps)) *authFixture {
	f := &authFixture{
		store:    newMemStore(),
		otps:     new(MockOTPRepo),
		profiles: new(MockProfileRepo),
		tokens:   new(MockTokenIssuer),
		guard:    new(MockLoginGuard),
		now:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	deps := usecase.AuthDeps{
		Users:    memUsers{f.store},
		Profiles: f.profiles,
		OTPs:     f.otps,
		Tx:       memTx{},
		Hasher:   password.NewHasher(4),
		Tokens:   f.tokens,
		Guard:    f.guard,
		TokenTTL: 2 * time.Hour,
		OTPTTL:   5 * time.Minute,
		Now:      func() time.Time { return f.now },
	}
	if mutate != nil {
		mutate(&deps)
	}
	f.uc = usecase.NewAuthUsecase(deps)
	return f
}

func registerInput() domain.RegisterInput {
	return domain.RegisterInput{
		Email:           "new@example.com",
		Username:        "newbie",
		FirstName:       "New",
		LastName:        "User",
		Password:        "s3cret!",
		ConfirmPassword: "s3cret!",
		AccountType:     domain.AccountTypeCandidate,
		OTP:             "123456",
		ContactNo:       "+15551234567",
	}
}

func TestRequestOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("Should store and return a fresh code, regenerating on collision", func(t *testing.T) {
		codes := []string{"111111", "222222"}
		f := newAuthFixture(func(d *usecase.AuthDeps) {
			d.GenerateCode = func() (string, error) {
				c := codes[0]
				codes = codes[1:]
				return c, nil
			}
		})
		f.otps.On("CodeExists", ctx, "111111").Return(true, nil).Once()
		f.otps.On("CodeExists", ctx, "222222").Return(false, nil).Once()
		f.otps.On("Create", ctx, mock.AnythingOfType("*domain.OTP")).Return(nil).Run(func(args mock.Arguments) {
			otp := args.Get(1).(*domain.OTP)
			assert.Equal(t, "fresh@example.com", otp.Email)
			assert.Equal(t, f.now, otp.IssuedAt)
		})

		code, err := f.uc.RequestOTP(ctx, "fresh@example.com")
		require.NoError(t, err)
		assert.Equal(t, "222222", code)
		f.otps.AssertExpectations(t)
	})

	t.Run("Should mail the code when a sender is configured and ignore mail failures", func(t *testing.T) {
		sender := new(MockOTPSender)
		f := newAuthFixture(func(d *usecase.AuthDeps) {
			d.Mailer = sender
			d.GenerateCode = func() (string, error) { return "333333", nil }
		})
		f.otps.On("CodeExists", ctx, "333333").Return(false, nil)
		f.otps.On("Create", ctx, mock.Anything).Return(nil)
		sender.On("SendOTP", "mail@example.com", "333333", 5*time.Minute).Return(errors.New("smtp down"))

		code, err := f.uc.RequestOTP(ctx, "mail@example.com")
		require.NoError(t, err)
		assert.Equal(t, "333333", code)
		sender.AssertExpectations(t)
	})

	t.Run("Should reject registered emails with conflict", func(t *testing.T) {
		f := newAuthFixture(nil)
		f.store.addUser("taken", domain.AccountTypeCandidate)

		_, err := f.uc.RequestOTP(ctx, "taken@example.com")
		assert.True(t, apperror.Is(err, apperror.KindConflict))
	})

	t.Run("Should reject empty and malformed emails", func(t *testing.T) {
		f := newAuthFixture(nil)
		_, err := f.uc.RequestOTP(ctx, "")
		assert.True(t, apperror.Is(err, apperror.KindInvalidInput))
		_, err = f.uc.RequestOTP(ctx, "not-an-email")
		assert.True(t, apperror.Is(err, apperror.KindInvalidInput))
	})
}

func TestRegisterOTPWindow(t *testing.T) {
	ctx := context.Background()
	issued := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	latest := &domain.OTP{Email: "new@example.com", Code: "123456", IssuedAt: issued}

	t.Run("Should accept the code at T+4m59s", func(t *testing.T) {
		f := newAuthFixture(nil)
		f.now = issued.Add(4*time.Minute + 59*time.Second)
		f.otps.On("GetLatestByEmail", ctx, "new@example.com").Return(latest, nil)
		f.profiles.On("Create", ctx, mock.AnythingOfType("*domain.Profile")).Return(nil)

		user, err := f.uc.Register(ctx, registerInput())
		require.NoError(t, err)
		assert.Equal(t, "newbie", user.Username)
		assert.NotEqual(t, "s3cret!", user.PasswordHash)
		require.NotNil(t, user.Profile)
		assert.Equal(t, "+15551234567", *user.Profile.ContactNo)
		assert.Nil(t, user.Profile.About)

		exists, _ := memUsers{f.store}.ExistsByEmail(ctx, "new@example.com")
		assert.True(t, exists)
	})

	t.Run("Should report the code expired at T+5m01s", func(t *testing.T) {
		f := newAuthFixture(nil)
		f.now = issued.Add(5*time.Minute + time.Second)
		f.otps.On("GetLatestByEmail", ctx, "new@example.com").Return(latest, nil)

		_, err := f.uc.Register(ctx, registerInput())
		assert.True(t, apperror.Is(err, apperror.KindExpired))
		f.profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject a mismatched code regardless of timing", func(t *testing.T) {
		for _, offset := range []time.Duration{time.Minute, 10 * time.Minute} {
			f := newAuthFixture(nil)
			f.now = issued.Add(offset)
			f.otps.On("GetLatestByEmail", ctx, "new@example.com").Return(latest, nil)

			in := registerInput()
			in.OTP = "654321"
			_, err := f.uc.Register(ctx, in)
			assert.True(t, apperror.Is(err, apperror.KindInvalidInput))
		}
	})

	t.Run("Should return not found when no code was issued", func(t *testing.T) {
		f := newAuthFixture(nil)
		f.otps.On("GetLatestByEmail", ctx, "new@example.com").Return(nil, domain.ErrNotFound)

		_, err := f.uc.Register(ctx, registerInput())
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*domain.RegisterInput)
		kind   apperror.Kind
	}{
		{"Should require every field", func(in *domain.RegisterInput) { in.Username = "" }, apperror.KindInvalidInput},
		{"Should reject unknown account types", func(in *domain.RegisterInput) { in.AccountType = "admin" }, apperror.KindInvalidInput},
		{"Should reject mismatched passwords", func(in *domain.RegisterInput) { in.ConfirmPassword = "other" }, apperror.KindInvalidInput},
		{"Should reject malformed usernames", func(in *domain.RegisterInput) { in.Username = "new bie!" }, apperror.KindInvalidInput},
		{"Should reject malformed contact numbers", func(in *domain.RegisterInput) { in.ContactNo = "call me" }, apperror.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(nil)
			in := registerInput()
			tt.mutate(&in)
			_, err := f.uc.Register(ctx, in)
			assert.True(t, apperror.Is(err, tt.kind))
			f.otps.AssertNotCalled(t, "GetLatestByEmail", mock.Anything, mock.Anything)
		})
	}

	t.Run("Should reject an existing email with conflict", func(t *testing.T) {
		f := newAuthFixture(nil)
		f.store.addUser("new", domain.AccountTypeCandidate)
		_, err := f.uc.Register(ctx, registerInput())
		assert.True(t, apperror.Is(err, apperror.KindConflict))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	seed := func(f *authFixture) *domain.User {
		digest, _ := password.NewHasher(4).Hash("s3cret!")
		user := &domain.User{ID: "u1", Username: "carl", Email: "carl@example.com", PasswordHash: digest, AccountType: domain.AccountTypeCandidate}
		require.NoError(t, memUsers{f.store}.Create(ctx, user))
		return user
	}

	t.Run("Should issue a two hour token and clear failed attempts", func(t *testing.T) {
		f := newAuthFixture(nil)
		seed(f)
		f.guard.On("IsBlocked", ctx, "carl@example.com", "10.0.0.1").Return(false, nil)
		f.guard.On("ClearAttempts", ctx, "carl@example.com", "10.0.0.1").Return(nil)
		f.tokens.On("Sign", "carl@example.com", "u1", "candidate", 2*time.Hour).Return("signed", nil)

		res, err := f.uc.Login(ctx, domain.LoginInput{Email: "carl@example.com", Password: "s3cret!", IP: "10.0.0.1"})
		require.NoError(t, err)
		assert.Equal(t, "signed", res.Token)
		assert.Equal(t, "u1", res.User.ID)
		f.guard.AssertExpectations(t)
	})

	t.Run("Should reject a wrong password and record the attempt", func(t *testing.T) {
		f := newAuthFixture(nil)
		seed(f)
		f.guard.On("IsBlocked", ctx, "carl@example.com", "10.0.0.1").Return(false, nil)
		f.guard.On("RecordFailedAttempt", ctx, "carl@example.com", "10.0.0.1", "").Return(false, 1, nil)

		_, err := f.uc.Login(ctx, domain.LoginInput{Email: "carl@example.com", Password: "wrong", IP: "10.0.0.1"})
		assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
		f.tokens.AssertNotCalled(t, "Sign", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject unknown emails", func(t *testing.T) {
		f := newAuthFixture(nil)
		f.guard.On("IsBlocked", ctx, "ghost@example.com", "").Return(false, nil)
		f.guard.On("RecordFailedAttempt", ctx, "ghost@example.com", "", "").Return(false, 1, nil)

		_, err := f.uc.Login(ctx, domain.LoginInput{Email: "ghost@example.com", Password: "whatever"})
		assert.True(t, apperror.Is(err, apperror.KindUnauthenticated))
	})

	t.Run("Should refuse blocked logins before checking the password", func(t *testing.T) {
		f := newAuthFixture(nil)
		seed(f)
		f.guard.On("IsBlocked", ctx, "carl@example.com", "10.0.0.1").Return(true, nil)

		_, err := f.uc.Login(ctx, domain.LoginInput{Email: "carl@example.com", Password: "s3cret!", IP: "10.0.0.1"})
		assert.True(t, apperror.Is(err, apperror.KindRateLimited))
	})

	t.Run("Should work without a login guard", func(t *testing.T) {
		f := newAuthFixture(func(d *usecase.AuthDeps) { d.Guard = nil })
		seed(f)
		f.tokens.On("Sign", "carl@example.com", "u1", "candidate", 2*time.Hour).Return("signed", nil)

		res, err := f.uc.Login(ctx, domain.LoginInput{Email: "carl@example.com", Password: "s3cret!"})
		require.NoError(t, err)
		assert.Equal(t, "signed", res.Token)
	})
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	profiles := new(MockProfileRepo)
	uc := usecase.NewProfileUsecase(memUsers{store}, profiles, memJobs{store}, memTx{}, nil)

	actor := store.addUser("carl", domain.AccountTypeCandidate)
	city := "Berlin"
	u := store.users["carl"]
	u.ProfileID = "p1"
	u.Profile = &domain.Profile{ID: "p1", City: &city}
	store.users["carl"] = u

	t.Run("Should keep old values for empty fields", func(t *testing.T) {
		profiles.On("Update", ctx, mock.AnythingOfType("*domain.Profile")).Return(nil).Run(func(args mock.Arguments) {
			p := args.Get(1).(*domain.Profile)
			assert.Equal(t, "Berlin", *p.City)
			assert.Equal(t, "MIT", *p.College)
		}).Once()

		updated, err := uc.UpdateProfile(ctx, actor, domain.ProfilePatch{FirstName: "Carlos", College: "MIT"})
		require.NoError(t, err)
		assert.Equal(t, "Carlos", updated.FirstName)
		assert.Equal(t, "Tester", updated.LastName)
		profiles.AssertExpectations(t)
	})

	t.Run("Should include the jobs applied to", func(t *testing.T) {
		recruiter := store.addUser("rita", domain.AccountTypeRecruiter)
		store.addCategory("cat", "Engineering")
		job, err := usecase.NewJobUsecase(memJobs{store}, memCategories{store}, memApps{store}, memTx{}, nil).
			CreateJob(ctx, recruiter, validJob("cat"))
		require.NoError(t, err)
		_, err = usecase.NewApplicationUsecase(memApps{store}, memJobs{store}, nil).
			ApplyToJob(ctx, actor, domain.ApplyInput{JobID: job.ID, Resume: "r.pdf"})
		require.NoError(t, err)

		details, err := uc.GetAllUserDetails(ctx, actor)
		require.NoError(t, err)
		require.Len(t, details.AppliedJobs, 1)
		assert.Equal(t, job.ID, details.AppliedJobs[0].ID)
		assert.Equal(t, []string{job.ID}, details.JobApplications)
	})
}
