package domain

import (
	"context"
	"time"
)

type AccountType string

const (
	AccountTypeCandidate AccountType = "candidate"
	AccountTypeRecruiter AccountType = "recruiter"
)

func (a AccountType) Valid() bool {
	return a == AccountTypeCandidate || a == AccountTypeRecruiter
}

type User struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	AccountType  AccountType `json:"account_type"`
	ProfileID    string      `json:"profile_id"`
	Profile      *Profile    `json:"profile,omitempty"`
	// Derived from jobs.recruiter_id and applications.candidate_id
	JobPostings     []string  `json:"job_postings"`
	JobApplications []string  `json:"job_applications"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Actor returns the identity this user acts as.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Email: u.Email, AccountType: u.AccountType}
}

type Profile struct {
	ID        string  `json:"id"`
	DOB       *string `json:"dob"`
	Gender    *string `json:"gender"`
	ContactNo *string `json:"contact_no"`
	About     *string `json:"about"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	Country   *string `json:"country"`
	College   *string `json:"college"`
}

// UserSummary is the populated form of a user reference.
type UserSummary struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	AccountType AccountType `json:"account_type"`
}

type RegisterInput struct {
	Email           string
	Username        string
	FirstName       string
	LastName        string
	Password        string
	ConfirmPassword string
	AccountType     AccountType
	OTP             string
	// Optional demographics stored on the profile
	DOB       string
	Gender    string
	ContactNo string
	City      string
	State     string
	Country   string
}

type LoginInput struct {
	Email     string
	Password  string
	IP        string
	UserAgent string
}

type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresIn time.Duration `json:"-"`
	User      *User         `json:"user"`
}

// ProfilePatch carries a partial profile update; empty fields keep the stored value.
type ProfilePatch struct {
	FirstName string
	LastName  string
	DOB       string
	Gender    string
	ContactNo string
	About     string
	City      string
	State     string
	Country   string
	College   string
}

type UserDetails struct {
	*User
	AppliedJobs []JobView `json:"applied_jobs"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateNames(ctx context.Context, id, firstName, lastName string) error
	GetSummaries(ctx context.Context, ids []string) (map[string]UserSummary, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	Update(ctx context.Context, profile *Profile) error
}

// TxManager runs fn in one store transaction carried by ctx.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Sign(email, id, accountType string, ttl time.Duration) (string, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(plain, digest string) bool
}

// LoginGuard throttles repeated failed logins.
type LoginGuard interface {
	IsBlocked(ctx context.Context, email, ip string) (bool, error)
	RecordFailedAttempt(ctx context.Context, email, ip, userAgent string) (bool, int, error)
	ClearAttempts(ctx context.Context, email, ip string) error
}

type AuthUsecase interface {
	RequestOTP(ctx context.Context, email string) (string, error)
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}

type ProfileUsecase interface {
	UpdateProfile(ctx context.Context, actor Actor, patch ProfilePatch) (*User, error)
	GetAllUserDetails(ctx context.Context, actor Actor) (*UserDetails, error)
}
