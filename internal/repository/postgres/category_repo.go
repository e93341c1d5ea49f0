package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type categoryRepo struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) domain.CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, c *domain.Category) error {
	query := `INSERT INTO categories (id, name, description) VALUES ($1, $2, $3)`
	_, err := conn(ctx, r.db).Exec(ctx, query, c.ID, c.Name, c.Description)
	return translate(err)
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return r.getOne(ctx, `SELECT id, name, description FROM categories WHERE id = $1`, id)
}

func (r *categoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.getOne(ctx, `SELECT id, name, description FROM categories WHERE LOWER(name) = LOWER($1)`, name)
}

func (r *categoryRepo) getOne(ctx context.Context, query, arg string) (*domain.Category, error) {
	var c domain.Category
	if err := conn(ctx, r.db).QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Description); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `SELECT id, name, description FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
