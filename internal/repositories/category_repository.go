package repositories

import (
	"context"
	"database/sql"
	"errors"

	"avidoBack/internal/models"
)

type CategoryRepository struct {
	DB *sql.DB
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	query := `
        INSERT INTO categories (name, slug, description, parent_id, sort_order, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query,
		category.Name, category.Slug, category.Description, category.ParentID, category.SortOrder,
	).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id int) (models.Category, error) {
	var category models.Category
	query := `SELECT id, name, slug, description, parent_id, sort_order, created_at, updated_at FROM categories WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&category.ID, &category.Name, &category.Slug, &category.Description,
		&category.ParentID, &category.SortOrder, &category.CreatedAt, &category.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, models.ErrCategoryNotFound
	}
	return category, err
}

// GetAllCategories returns the flat category list; the tree is materialized
// in the service layer so traversal can carry a cycle guard.
func (r *CategoryRepository) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, slug, description, parent_id, sort_order, created_at, updated_at FROM categories ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(
			&category.ID, &category.Name, &category.Slug, &category.Description,
			&category.ParentID, &category.SortOrder, &category.CreatedAt, &category.UpdatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	query := `UPDATE categories SET name = $1, slug = $2, description = $3, parent_id = $4, sort_order = $5, updated_at = NOW() WHERE id = $6`
	res, err := r.DB.ExecContext(ctx, query,
		category.Name, category.Slug, category.Description, category.ParentID, category.SortOrder, category.ID)
	if err != nil {
		return models.Category{}, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return models.Category{}, err
	}
	if rows == 0 {
		return models.Category{}, models.ErrCategoryNotFound
	}
	return r.GetCategoryByID(ctx, category.ID)
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrCategoryNotFound
	}
	return nil
}
