package controller

import (
    "net/http"

    "github.com/unclebandit/crm-backend/internal/service"
)

type CategoryController struct {
    CategoryService *service.CategoryService
}

// ListCategories serves the read-only category dropdown.
func (c *CategoryController) ListCategories(w http.ResponseWriter, r *http.Request) {
    categories, err := c.CategoryService.ListCategories()
    if err != nil {
        respondError(w, err)
        return
    }

    respondJSON(w, http.StatusOK, categories)
}
