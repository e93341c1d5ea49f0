package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO profiles (id, dob, gender, contact_no, about, city, state, country, college)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := conn(ctx, r.db).Exec(ctx, query,
		p.ID, p.DOB, p.Gender, p.ContactNo, p.About, p.City, p.State, p.Country, p.College,
	)
	return translate(err)
}

func (r *profileRepo) Update(ctx context.Context, p *domain.Profile) error {
	query := `UPDATE profiles SET dob = $2, gender = $3, contact_no = $4, about = $5,
              city = $6, state = $7, country = $8, college = $9 WHERE id = $1`
	tag, err := conn(ctx, r.db).Exec(ctx, query,
		p.ID, p.DOB, p.Gender, p.ContactNo, p.About, p.City, p.State, p.Country, p.College,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
