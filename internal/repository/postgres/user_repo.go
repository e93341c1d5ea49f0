package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name, u.account_type, u.profile_id, u.created_at, u.updated_at,
	p.id, p.dob, p.gender, p.contact_no, p.about, p.city, p.state, p.country, p.college`

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, first_name, last_name, account_type, profile_id, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := conn(ctx, r.db).Exec(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.AccountType, user.ProfileID, user.CreatedAt, user.UpdatedAt,
	)
	return translate(err)
}

// GetByID loads the user with its profile and derived back-references.
func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `u.id = $1`, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `u.email = $1`, email)
}

func (r *userRepo) getOne(ctx context.Context, where string, arg string) (*domain.User, error) {
	query := `SELECT ` + userColumns + `,
			ARRAY(SELECT j.id::text FROM jobs j WHERE j.recruiter_id = u.id ORDER BY j.created_at),
			ARRAY(SELECT a.job_id::text FROM applications a WHERE a.candidate_id = u.id ORDER BY a.applied_at)
		FROM users u
		JOIN profiles p ON p.id = u.profile_id
		WHERE ` + where

	var user domain.User
	var profile domain.Profile
	postings := []string{}
	applications := []string{}
	err := conn(ctx, r.db).QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.AccountType, &user.ProfileID, &user.CreatedAt, &user.UpdatedAt,
		&profile.ID, &profile.DOB, &profile.Gender, &profile.ContactNo, &profile.About,
		&profile.City, &profile.State, &profile.Country, &profile.College,
		pq.Array(&postings), pq.Array(&applications),
	)
	if err != nil {
		return nil, translate(err)
	}
	user.Profile = &profile
	user.JobPostings = postings
	user.JobApplications = applications
	return &user, nil
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *userRepo) UpdateNames(ctx context.Context, id, firstName, lastName string) error {
	query := `UPDATE users SET first_name = $2, last_name = $3, updated_at = NOW() WHERE id = $1`
	tag, err := conn(ctx, r.db).Exec(ctx, query, id, firstName, lastName)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetSummaries returns the public projection of each known id. Unknown ids are omitted.
func (r *userRepo) GetSummaries(ctx context.Context, ids []string) (map[string]domain.UserSummary, error) {
	summaries := make(map[string]domain.UserSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	query := `SELECT id, username, email, first_name, last_name, account_type
		FROM users WHERE id::text = ANY($1)`
	rows, err := conn(ctx, r.db).Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.UserSummary
		if err := rows.Scan(&s.ID, &s.Username, &s.Email, &s.FirstName, &s.LastName, &s.AccountType); err != nil {
			return nil, err
		}
		summaries[s.ID] = s
	}
	return summaries, rows.Err()
}
