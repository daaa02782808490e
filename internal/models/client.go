package models

import "database/sql"

// Client represents a row of the clients table. Optional contact fields are nullable.
type Client struct {
	ClientID int64          `db:"id"`
	Name     string         `db:"name"`
	Email    sql.NullString `db:"email"`
	Phone    sql.NullString `db:"phone"`
	Company  sql.NullString `db:"company"`
	AuditFields
}
