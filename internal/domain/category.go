package domain

import "context"

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	// GetByName matches case-insensitively
	GetByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]Category, error)
}

type CategoryUsecase interface {
	CreateCategory(ctx context.Context, actor Actor, name, description string) (*Category, error)
	ShowAllCategories(ctx context.Context) ([]Category, error)
	GetJobsByCategory(ctx context.Context, categoryID string) ([]JobView, error)
	SearchJobsByCategory(ctx context.Context, name string) ([]JobView, error)
}
