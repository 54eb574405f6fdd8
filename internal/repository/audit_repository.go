package repository

import (
    "database/sql"

    "github.com/unclebandit/crm-backend/internal/model"
)

type AuditRepositoryInterface interface {
    Record(ev *model.AuditEvent) error
    ListRecent(limit int) ([]model.AuditEvent, error)
}

type AuditRepository struct {
    DB *sql.DB
}

func (r *AuditRepository) Record(ev *model.AuditEvent) error {
    query := `
        INSERT INTO audit_log (action, entity, entity_id, occurred_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
    return r.DB.QueryRow(query, ev.Action, ev.Entity, ev.EntityID, ev.OccurredAt).Scan(&ev.ID)
}

func (r *AuditRepository) ListRecent(limit int) ([]model.AuditEvent, error) {
    rows, err := r.DB.Query(`
        SELECT id, action, entity, entity_id, occurred_at
        FROM audit_log
        ORDER BY id DESC
        LIMIT $1
    `, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    events := []model.AuditEvent{}
    for rows.Next() {
        var ev model.AuditEvent
        if err := rows.Scan(&ev.ID, &ev.Action, &ev.Entity, &ev.EntityID, &ev.OccurredAt); err != nil {
            return nil, err
        }
        events = append(events, ev)
    }
    return events, rows.Err()
}

var _ AuditRepositoryInterface = (*AuditRepository)(nil)
