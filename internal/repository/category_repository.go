package repository

import (
    "database/sql"

    "github.com/unclebandit/crm-backend/internal/model"
)

// CategoryRepositoryInterface defines methods used by services
type CategoryRepositoryInterface interface {
    ListAll() ([]model.CustomerCategory, error)
    GetByID(id int) (*model.CustomerCategory, error)
}

type CategoryRepository struct {
    DB *sql.DB
}

// ListAll fetches all categories ordered by name (dropdown order).
func (r *CategoryRepository) ListAll() ([]model.CustomerCategory, error) {
    rows, err := r.DB.Query(`SELECT id, name FROM customer_categories ORDER BY name ASC`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    categories := []model.CustomerCategory{}
    for rows.Next() {
        var cat model.CustomerCategory
        if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
            return nil, err
        }
        categories = append(categories, cat)
    }
    return categories, rows.Err()
}

// GetByID returns (nil, nil) when the category does not exist.
func (r *CategoryRepository) GetByID(id int) (*model.CustomerCategory, error) {
    var cat model.CustomerCategory
    err := r.DB.QueryRow(`SELECT id, name FROM customer_categories WHERE id=$1`, id).Scan(&cat.ID, &cat.Name)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil
        }
        return nil, err
    }
    return &cat, nil
}

var _ CategoryRepositoryInterface = (*CategoryRepository)(nil)
