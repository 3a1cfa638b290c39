package category

import "context"

type Repository interface {
	CreateCategory(context context.Context, c ForCreate) (int64, error)
	GetCategory(context context.Context, id int64) (*Category, error)
	ListCategories(context context.Context) ([]Category, error)
	UpdateCategory(context context.Context, id int64, c ForUpdate) error
	DeleteCategory(context context.Context, id int64) error
}
