package service

import (
    "github.com/unclebandit/crm-backend/internal/model"
    "github.com/unclebandit/crm-backend/internal/repository"
)

type CategoryService struct {
    CategoryRepo repository.CategoryRepositoryInterface
}

// ListCategories returns all categories in dropdown (name) order.
func (s *CategoryService) ListCategories() ([]model.CustomerCategory, error) {
    return s.CategoryRepo.ListAll()
}
