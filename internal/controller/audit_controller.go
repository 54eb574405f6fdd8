package controller

import (
    "net/http"

    "github.com/unclebandit/crm-backend/internal/repository"
)

type AuditController struct {
    AuditRepo repository.AuditRepositoryInterface
}

// ListAuditEvents returns the most recent entity change events.
func (c *AuditController) ListAuditEvents(w http.ResponseWriter, r *http.Request) {
    events, err := c.AuditRepo.ListRecent(50)
    if err != nil {
        respondError(w, err)
        return
    }

    respondJSON(w, http.StatusOK, events)
}
