package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Deal represents a row of the deals table.
type Deal struct {
	DealID     int64           `db:"id"`
	Title      string          `db:"title"`
	ClientID   int64           `db:"client_id"`
	Amount     decimal.Decimal `db:"amount"`
	Status     string          `db:"status"`
	AssignedTo sql.NullInt64   `db:"assigned_to"`
	ClosedAt   sql.NullTime    `db:"closed_at"`
	AuditFields
}
