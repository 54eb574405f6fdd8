// internal/controller/customer_controller.go
package controller

import (
    "encoding/json"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"

    "github.com/unclebandit/crm-backend/internal/repository"
    "github.com/unclebandit/crm-backend/internal/service"
)

type CustomerController struct {
    CustomerService *service.CustomerService
}

func (c *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
    filters := repository.CustomerFilters{
        Search: r.URL.Query().Get("search"),
    }
    if categoryStr := r.URL.Query().Get("category"); categoryStr != "" {
        if categoryID, err := strconv.Atoi(categoryStr); err == nil {
            filters.CategoryID = categoryID
        }
    }

    customers, err := c.CustomerService.ListCustomers(filters)
    if err != nil {
        respondError(w, err)
        return
    }

    respondJSON(w, http.StatusOK, service.FormatCustomersForResponse(customers))
}

func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
    var input service.CustomerInput
    if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
        respondMessage(w, http.StatusBadRequest, "invalid request body")
        return
    }

    customer, err := c.CustomerService.CreateCustomer(input)
    if err != nil {
        respondError(w, err)
        return
    }

    respondJSON(w, http.StatusCreated, service.FormatCustomerForResponse(customer))
}

// GetCustomer returns the detail form with the contact list attached.
func (c *CustomerController) GetCustomer(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        respondMessage(w, http.StatusNotFound, "Customer not found")
        return
    }

    customer, err := c.CustomerService.GetCustomer(id)
    if err != nil {
        respondError(w, err)
        return
    }

    respondJSON(w, http.StatusOK, service.FormatCustomerDetail(customer))
}

func (c *CustomerController) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        respondMessage(w, http.StatusNotFound, "Customer not found")
        return
    }

    var input service.CustomerInput
    if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
        respondMessage(w, http.StatusBadRequest, "invalid request body")
        return
    }

    customer, err := c.CustomerService.UpdateCustomer(id, input)
    if err != nil {
        respondError(w, err)
        return
    }

    respondJSON(w, http.StatusOK, service.FormatCustomerForResponse(customer))
}

func (c *CustomerController) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        respondMessage(w, http.StatusNotFound, "Customer not found")
        return
    }

    if err := c.CustomerService.DeleteCustomer(id); err != nil {
        respondError(w, err)
        return
    }

    respondMessage(w, http.StatusOK, "Customer deleted successfully")
}
