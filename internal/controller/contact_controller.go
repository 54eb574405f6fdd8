package controller

import (
    "encoding/json"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"

    "github.com/unclebandit/crm-backend/internal/service"
)

type ContactController struct {
    ContactService *service.ContactService
}

// ListContacts returns all contacts of a customer.
func (c *ContactController) ListContacts(w http.ResponseWriter, r *http.Request) {
    customerID, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        respondMessage(w, http.StatusNotFound, "Customer not found")
        return
    }

    contacts, err := c.ContactService.ListByCustomer(customerID)
    if err != nil {
        respondError(w, err)
        return
    }

    respondJSON(w, http.StatusOK, service.FormatContactsForResponse(contacts))
}

func (c *ContactController) CreateContact(w http.ResponseWriter, r *http.Request) {
    customerID, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        respondMessage(w, http.StatusNotFound, "Customer not found")
        return
    }

    var input service.ContactInput
    if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
        respondMessage(w, http.StatusBadRequest, "invalid request body")
        return
    }

    contact, err := c.ContactService.CreateContact(customerID, input)
    if err != nil {
        respondError(w, err)
        return
    }

    respondJSON(w, http.StatusCreated, service.FormatContactForResponse(contact))
}

// UpdateContact is addressed by bare contact id, not scoped to the
// owning customer. This mirrors the exposed routes.
func (c *ContactController) UpdateContact(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        respondMessage(w, http.StatusNotFound, "Contact not found")
        return
    }

    var input service.ContactInput
    if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
        respondMessage(w, http.StatusBadRequest, "invalid request body")
        return
    }

    contact, err := c.ContactService.UpdateContact(id, input)
    if err != nil {
        respondError(w, err)
        return
    }

    respondJSON(w, http.StatusOK, service.FormatContactForResponse(contact))
}

func (c *ContactController) DeleteContact(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        respondMessage(w, http.StatusNotFound, "Contact not found")
        return
    }

    if err := c.ContactService.DeleteContact(id); err != nil {
        respondError(w, err)
        return
    }

    respondMessage(w, http.StatusOK, "Contact deleted successfully")
}
