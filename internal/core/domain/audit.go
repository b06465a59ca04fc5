package domain

import "time"

// AuditAction represents the type of audited mutation.
type AuditAction string

const (
	AuditActionAdd    AuditAction = "Add"
	AuditActionUpdate AuditAction = "Update"
	AuditActionDelete AuditAction = "Delete"
)

// AuditLogEntry records one mutation with before/after snapshots.
// Entries are append-only.
type AuditLogEntry struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"` // actor
	ActionType AuditAction `json:"actionType"`
	Target     string      `json:"target"`
	ItemID     string      `json:"itemId"`
	OldValue   *string     `json:"oldValue"` // JSON snapshot
	NewValue   *string     `json:"newValue"` // JSON snapshot
	Date       time.Time   `json:"date"`
}
