package models

import "time"

// AuditEntry mirrors the auditlog table: one row per roster or match
// mutation, carrying a unique id so entries can be correlated with the
// records they describe.
type AuditEntry struct {
	ID        int       `json:"id" db:"id"`
	Action    string    `json:"action" db:"action"`
	Entry     string    `json:"entry" db:"entry"`
	UID       string    `json:"uid" db:"uid"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
