package domain

import (
	"context"
	"time"
)

type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	CandidateID string    `json:"candidate_id"`
	CoverLetter *string   `json:"cover_letter"`
	Resume      string    `json:"resume"`
	AppliedAt   time.Time `json:"applied_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ApplicationView is an application with its job and/or candidate populated.
type ApplicationView struct {
	Application
	Job       *Job         `json:"job,omitempty"`
	Candidate *UserSummary `json:"candidate,omitempty"`
}

type ApplyInput struct {
	JobID       string
	CoverLetter string
	Resume      string
}

// ApplicationPatch is a partial update; empty fields keep the stored value.
type ApplicationPatch struct {
	CoverLetter string
	Resume      string
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	GetView(ctx context.Context, id string) (*ApplicationView, error)
	FetchByJob(ctx context.Context, jobID string) ([]ApplicationView, error)
	FetchByCandidate(ctx context.Context, candidateID string) ([]ApplicationView, error)
	CheckExists(ctx context.Context, jobID, candidateID string) (bool, error)
	Update(ctx context.Context, app *Application) error
	Delete(ctx context.Context, id string) error
	DeleteByJob(ctx context.Context, jobID string) (int64, error)
}

type ApplicationUsecase interface {
	ApplyToJob(ctx context.Context, actor Actor, in ApplyInput) (*Application, error)
	UpdateApplication(ctx context.Context, actor Actor, applicationID string, patch ApplicationPatch) (*Application, error)
	WithdrawApplication(ctx context.Context, actor Actor, applicationID string) error
	GetApplicationsByJob(ctx context.Context, actor Actor, jobID string) ([]ApplicationView, error)
	GetApplicationsByUser(ctx context.Context, actor Actor) ([]ApplicationView, error)
	GetApplicationDetails(ctx context.Context, applicationID string) (*ApplicationView, error)
	// ExportApplications renders the job's applications as an xlsx workbook
	ExportApplications(ctx context.Context, actor Actor, jobID string) ([]byte, string, error)
}

// FileStore persists uploaded files and returns their URL.
type FileStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type UploadLimiter interface {
	AllowUpload(ctx context.Context, userID string) (bool, time.Duration, error)
}

type ResumeUsecase interface {
	UploadResume(ctx context.Context, actor Actor, filename string, data []byte) (string, error)
}
