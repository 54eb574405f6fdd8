package controller

import (
    "encoding/json"
    "errors"
    "net/http"

    appErrors "github.com/unclebandit/crm-backend/internal/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
    respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps the error taxonomy to status codes: validation
// failures carry per-field messages at 422, missing ids are 404,
// everything else is a 500.
func respondError(w http.ResponseWriter, err error) {
    var validation *appErrors.ValidationError
    if errors.As(err, &validation) {
        respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
            "message": "The given data was invalid.",
            "errors":  validation.Errors,
        })
        return
    }

    var customerNotFound *appErrors.ErrCustomerNotFound
    if errors.As(err, &customerNotFound) {
        respondMessage(w, http.StatusNotFound, "Customer not found")
        return
    }

    var contactNotFound *appErrors.ErrContactNotFound
    if errors.As(err, &contactNotFound) {
        respondMessage(w, http.StatusNotFound, "Contact not found")
        return
    }

    respondMessage(w, http.StatusInternalServerError, err.Error())
}
