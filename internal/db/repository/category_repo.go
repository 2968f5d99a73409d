package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]sqlcgen.Category, error)
	GetCategory(ctx context.Context, id int32) (sqlcgen.Category, error)
}

// CategoryRepository resolves category ids and names.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// List returns all categories ordered by id, or ErrNotFound when there are none.
func (r *CategoryRepository) List(ctx context.Context) ([]sqlcgen.Category, error) {
	rows, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows, nil
}

// Get fetches one category by id.
func (r *CategoryRepository) Get(ctx context.Context, id int32) (sqlcgen.Category, error) {
	row, err := r.store.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sqlcgen.Category{}, ErrNotFound
		}
		return sqlcgen.Category{}, err
	}
	return row, nil
}
