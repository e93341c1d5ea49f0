package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationColumns = `a.id, a.job_id, a.candidate_id, a.cover_letter, a.resume, a.applied_at, a.updated_at`

func scanApplication(row pgx.Row, app *domain.Application, extra ...any) error {
	dest := append([]any{
		&app.ID, &app.JobID, &app.CandidateID, &app.CoverLetter, &app.Resume, &app.AppliedAt, &app.UpdatedAt,
	}, extra...)
	return row.Scan(dest...)
}

// Create inserts a new application. A second application for the same
// job and candidate fails with domain.ErrDuplicate.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (id, job_id, candidate_id, cover_letter, resume, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := conn(ctx, r.db).Exec(ctx, query,
		app.ID, app.JobID, app.CandidateID, app.CoverLetter, app.Resume, app.AppliedAt, app.UpdatedAt,
	)
	return translate(err)
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications a WHERE a.id = $1`
	var app domain.Application
	if err := scanApplication(conn(ctx, r.db).QueryRow(ctx, query, id), &app); err != nil {
		return nil, translate(err)
	}
	return &app, nil
}

// GetView retrieves an application with its job and candidate populated
func (r *applicationRepo) GetView(ctx context.Context, id string) (*domain.ApplicationView, error) {
	query := `
		SELECT ` + applicationColumns + `,
			` + jobColumns + `,
			u.id, u.username, u.email, u.first_name, u.last_name, u.account_type
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users u ON u.id = a.candidate_id
		WHERE a.id = $1`

	var view domain.ApplicationView
	var job domain.Job
	var candidate domain.UserSummary
	skills := []string{}
	err := scanApplication(conn(ctx, r.db).QueryRow(ctx, query, id), &view.Application,
		&job.ID, &job.Title, &job.Description, &job.Company, &job.Location, &job.Salary,
		pq.Array(&skills), &job.RecruiterID, &job.CategoryID, &job.CreatedAt, &job.UpdatedAt,
		&candidate.ID, &candidate.Username, &candidate.Email, &candidate.FirstName, &candidate.LastName, &candidate.AccountType,
	)
	if err != nil {
		return nil, translate(err)
	}
	job.Skills = skills
	view.Job = &job
	view.Candidate = &candidate
	return &view, nil
}

// FetchByJob retrieves all applications for a job with the candidate populated
func (r *applicationRepo) FetchByJob(ctx context.Context, jobID string) ([]domain.ApplicationView, error) {
	query := `
		SELECT ` + applicationColumns + `,
			u.id, u.username, u.email, u.first_name, u.last_name, u.account_type
		FROM applications a
		JOIN users u ON u.id = a.candidate_id
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC`

	rows, err := conn(ctx, r.db).Query(ctx, query, jobID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	applications := []domain.ApplicationView{}
	for rows.Next() {
		var view domain.ApplicationView
		var candidate domain.UserSummary
		if err := scanApplication(rows, &view.Application,
			&candidate.ID, &candidate.Username, &candidate.Email, &candidate.FirstName, &candidate.LastName, &candidate.AccountType,
		); err != nil {
			return nil, err
		}
		view.Candidate = &candidate
		applications = append(applications, view)
	}
	return applications, rows.Err()
}

// FetchByCandidate retrieves all applications of a candidate with the job populated
func (r *applicationRepo) FetchByCandidate(ctx context.Context, candidateID string) ([]domain.ApplicationView, error) {
	query := `
		SELECT ` + applicationColumns + `,
			` + jobColumns + `
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE a.candidate_id = $1
		ORDER BY a.applied_at DESC`

	rows, err := conn(ctx, r.db).Query(ctx, query, candidateID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	applications := []domain.ApplicationView{}
	for rows.Next() {
		var view domain.ApplicationView
		var job domain.Job
		skills := []string{}
		if err := scanApplication(rows, &view.Application,
			&job.ID, &job.Title, &job.Description, &job.Company, &job.Location, &job.Salary,
			pq.Array(&skills), &job.RecruiterID, &job.CategoryID, &job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			return nil, err
		}
		job.Skills = skills
		view.Job = &job
		applications = append(applications, view)
	}
	return applications, rows.Err()
}

// CheckExists checks if an application already exists for the job/candidate combination
func (r *applicationRepo) CheckExists(ctx context.Context, jobID, candidateID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx, query, jobID, candidateID).Scan(&exists)
	return exists, translate(err)
}

func (r *applicationRepo) Update(ctx context.Context, app *domain.Application) error {
	query := `UPDATE applications SET cover_letter = $2, resume = $3, updated_at = $4 WHERE id = $1`
	tag, err := conn(ctx, r.db).Exec(ctx, query, app.ID, app.CoverLetter, app.Resume, app.UpdatedAt)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByJob removes every application of the job and returns how many were removed
func (r *applicationRepo) DeleteByJob(ctx context.Context, jobID string) (int64, error) {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM applications WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, translate(err)
	}
	return tag.RowsAffected(), nil
}
