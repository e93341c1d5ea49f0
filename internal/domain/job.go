package domain

import (
	"context"
	"time"
)

type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Salary      *string   `json:"salary"`
	Skills      []string  `json:"skills"`
	RecruiterID string    `json:"recruiter_id"`
	CategoryID  string    `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobView is a job with its references populated.
type JobView struct {
	Job
	Category     *Category    `json:"category,omitempty"`
	Recruiter    *UserSummary `json:"recruiter,omitempty"`
	Applications []string     `json:"applications,omitempty"`
}

type JobInput struct {
	Title       string
	Description string
	Company     string
	Location    string
	Salary      string
	Skills      []string
	CategoryID  string
}

// JobPatch is a partial update; empty strings and an empty skills list keep the stored value.
type JobPatch struct {
	Title       string
	Description string
	Company     string
	Location    string
	Salary      string
	Skills      []string
	CategoryID  string
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	GetView(ctx context.Context, id string) (*JobView, error)
	FetchViews(ctx context.Context, limit, offset int) ([]JobView, int64, error)
	FetchViewsByCategory(ctx context.Context, categoryID string) ([]JobView, error)
	FetchViewsByIDs(ctx context.Context, ids []string) ([]JobView, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id string) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, actor Actor, in JobInput) (*Job, error)
	UpdateJob(ctx context.Context, actor Actor, jobID string, patch JobPatch) (*Job, error)
	// DeleteJob returns the number of applications removed with the job
	DeleteJob(ctx context.Context, actor Actor, jobID string) (int64, error)
	GetAllJobs(ctx context.Context, page, pageSize int) ([]JobView, int64, error)
	GetJobDetails(ctx context.Context, jobID string) (*JobView, error)
}
