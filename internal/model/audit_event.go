package model

import "time"

// AuditEvent records a single entity mutation. Published to the
// crm_events topic after every successful create/update/delete and
// persisted to the audit_log table by a subscriber.
type AuditEvent struct {
    ID         int       `db:"id" json:"id"`
    Action     string    `db:"action" json:"action"` // created, updated, deleted
    Entity     string    `db:"entity" json:"entity"` // customer, contact
    EntityID   int       `db:"entity_id" json:"entity_id"`
    OccurredAt time.Time `db:"occurred_at" json:"occurred_at"`
}
