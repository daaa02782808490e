package models

import "time"

// AuditFields holds the audit columns shared by client and deal rows.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	CreatedBy int64     `db:"created_by"`
	UpdatedAt time.Time `db:"updated_at"`
}
