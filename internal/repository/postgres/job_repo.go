package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `j.id, j.title, j.description, j.company, j.location, j.salary, j.skills, j.recruiter_id, j.category_id, j.created_at, j.updated_at`

// jobViewQuery populates category, recruiter and application ids in one pass.
const jobViewQuery = `
	SELECT ` + jobColumns + `,
		c.id, c.name, c.description,
		u.id, u.username, u.email, u.first_name, u.last_name, u.account_type,
		ARRAY(SELECT a.id::text FROM applications a WHERE a.job_id = j.id ORDER BY a.applied_at)
	FROM jobs j
	JOIN categories c ON c.id = j.category_id
	JOIN users u ON u.id = j.recruiter_id`

func scanJob(row pgx.Row, job *domain.Job, extra ...any) error {
	skills := []string{}
	dest := append([]any{
		&job.ID, &job.Title, &job.Description, &job.Company, &job.Location, &job.Salary,
		pq.Array(&skills), &job.RecruiterID, &job.CategoryID, &job.CreatedAt, &job.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	job.Skills = skills
	return nil
}

func scanJobView(row pgx.Row) (*domain.JobView, error) {
	var view domain.JobView
	var category domain.Category
	var recruiter domain.UserSummary
	applications := []string{}
	err := scanJob(row, &view.Job,
		&category.ID, &category.Name, &category.Description,
		&recruiter.ID, &recruiter.Username, &recruiter.Email, &recruiter.FirstName, &recruiter.LastName, &recruiter.AccountType,
		pq.Array(&applications),
	)
	if err != nil {
		return nil, err
	}
	view.Category = &category
	view.Recruiter = &recruiter
	view.Applications = applications
	return &view, nil
}

func collectJobViews(rows pgx.Rows) ([]domain.JobView, error) {
	defer rows.Close()
	views := []domain.JobView{}
	for rows.Next() {
		view, err := scanJobView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, rows.Err()
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (id, title, description, company, location, salary, skills, recruiter_id, category_id, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := conn(ctx, r.db).Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Company, job.Location, job.Salary, pq.Array(job.Skills),
		job.RecruiterID, job.CategoryID, job.CreatedAt, job.UpdatedAt,
	)
	return translate(err)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.id = $1`
	var job domain.Job
	if err := scanJob(conn(ctx, r.db).QueryRow(ctx, query, id), &job); err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

func (r *jobRepo) GetView(ctx context.Context, id string) (*domain.JobView, error) {
	view, err := scanJobView(conn(ctx, r.db).QueryRow(ctx, jobViewQuery+` WHERE j.id = $1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return view, nil
}

func (r *jobRepo) FetchViews(ctx context.Context, limit, offset int) ([]domain.JobView, int64, error) {
	q := conn(ctx, r.db)
	rows, err := q.Query(ctx, jobViewQuery+` ORDER BY j.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	views, err := collectJobViews(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (r *jobRepo) FetchViewsByCategory(ctx context.Context, categoryID string) ([]domain.JobView, error) {
	rows, err := conn(ctx, r.db).Query(ctx, jobViewQuery+` WHERE j.category_id = $1 ORDER BY j.created_at DESC`, categoryID)
	if err != nil {
		return nil, translate(err)
	}
	return collectJobViews(rows)
}

func (r *jobRepo) FetchViewsByIDs(ctx context.Context, ids []string) ([]domain.JobView, error) {
	if len(ids) == 0 {
		return []domain.JobView{}, nil
	}
	rows, err := conn(ctx, r.db).Query(ctx, jobViewQuery+` WHERE j.id::text = ANY($1) ORDER BY j.created_at DESC`, pq.Array(ids))
	if err != nil {
		return nil, translate(err)
	}
	return collectJobViews(rows)
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET title = $2, description = $3, company = $4, location = $5, salary = $6,
              skills = $7, category_id = $8, updated_at = $9 WHERE id = $1`
	tag, err := conn(ctx, r.db).Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Company, job.Location, job.Salary,
		pq.Array(job.Skills), job.CategoryID, job.UpdatedAt,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Delete(ctx context.Context, id string) error {
	tag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
