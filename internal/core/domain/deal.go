package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/crm_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DealStatus is the position of a deal in the sales pipeline.
type DealStatus string

const (
	DealStatusNew         DealStatus = "new"
	DealStatusNegotiation DealStatus = "negotiation"
	DealStatusWon         DealStatus = "won"
	DealStatusLost        DealStatus = "lost"
)

// DealStatuses lists every status in pipeline order.
var DealStatuses = []DealStatus{DealStatusNew, DealStatusNegotiation, DealStatusWon, DealStatusLost}

// MaxDealTitleLength is the maximum number of characters in a deal title.
const MaxDealTitleLength = 255

// DealAmountScale is the number of decimal places a deal amount may carry.
const DealAmountScale = 2

// DealAmountLimit is the exclusive upper bound of a deal amount (NUMERIC(12,2)).
var DealAmountLimit = decimal.New(1, 10)

// IsValid reports whether s is one of the known statuses.
func (s DealStatus) IsValid() bool {
	switch s {
	case DealStatusNew, DealStatusNegotiation, DealStatusWon, DealStatusLost:
		return true
	}
	return false
}

// IsClosed reports whether s belongs to the closed set {won, lost}.
func (s DealStatus) IsClosed() bool {
	return s == DealStatusWon || s == DealStatusLost
}

// Deal represents a sales opportunity tracked through the status lifecycle.
type Deal struct {
	DealID     int64           `json:"dealID"` // Assigned by the store
	Title      string          `json:"title"`
	ClientID   int64           `json:"clientID"` // FK -> clients.client_id
	Amount     decimal.Decimal `json:"amount"`
	Status     DealStatus      `json:"status"`
	AssignedTo *int64          `json:"assignedTo,omitempty"` // Nullable FK -> users.user_id
	ClosedAt   *time.Time      `json:"closedAt,omitempty"`
	AuditFields
}

// NewDealParams carries the caller-supplied fields of a deal being created.
type NewDealParams struct {
	Title      string
	ClientID   int64
	Amount     decimal.Decimal
	Status     DealStatus // Empty means DealStatusNew
	AssignedTo *int64
	CreatedBy  int64
}

// NewDeal builds a validated, not yet persisted deal.
// The implicit prior state is "not closed", so a deal created as won or lost is closed at now.
func NewDeal(p NewDealParams, now time.Time) (Deal, error) {
	if p.Status == "" {
		p.Status = DealStatusNew
	}
	if err := validateTitle(p.Title); err != nil {
		return Deal{}, err
	}
	if err := ValidateDealAmount(p.Amount); err != nil {
		return Deal{}, err
	}
	if !p.Status.IsValid() {
		return Deal{}, fmt.Errorf("%w: invalid deal status %q", apperrors.ErrValidation, p.Status)
	}
	if p.ClientID <= 0 {
		return Deal{}, fmt.Errorf("%w: client_id must be positive", apperrors.ErrValidation)
	}
	if p.AssignedTo != nil && *p.AssignedTo <= 0 {
		return Deal{}, fmt.Errorf("%w: assigned_to must be positive", apperrors.ErrValidation)
	}

	deal := Deal{
		Title:      p.Title,
		ClientID:   p.ClientID,
		Amount:     p.Amount,
		Status:     p.Status,
		AssignedTo: p.AssignedTo,
		AuditFields: AuditFields{
			CreatedAt: now,
			CreatedBy: p.CreatedBy,
			UpdatedAt: now,
		},
	}
	if deal.Status.IsClosed() {
		closedAt := now
		deal.ClosedAt = &closedAt
	}
	return deal, nil
}

// DealUpdate lists the fields a partial update may change. Nil means "leave unchanged".
type DealUpdate struct {
	Title      *string
	ClientID   *int64
	Amount     *decimal.Decimal
	Status     *DealStatus
	AssignedTo *int64
}

// IsEmpty reports whether the update carries no fields.
func (u DealUpdate) IsEmpty() bool {
	return u.Title == nil && u.ClientID == nil && u.Amount == nil && u.Status == nil && u.AssignedTo == nil
}

// Validate checks the supplied fields only.
func (u DealUpdate) Validate() error {
	if u.Title != nil {
		if err := validateTitle(*u.Title); err != nil {
			return err
		}
	}
	if u.Amount != nil {
		if err := ValidateDealAmount(*u.Amount); err != nil {
			return err
		}
	}
	if u.Status != nil && !u.Status.IsValid() {
		return fmt.Errorf("%w: invalid deal status %q", apperrors.ErrValidation, *u.Status)
	}
	if u.ClientID != nil && *u.ClientID <= 0 {
		return fmt.Errorf("%w: client_id must be positive", apperrors.ErrValidation)
	}
	if u.AssignedTo != nil && *u.AssignedTo <= 0 {
		return fmt.Errorf("%w: assigned_to must be positive", apperrors.ErrValidation)
	}
	return nil
}

// Apply mutates d with the supplied fields and refreshes UpdatedAt.
// The update must already be validated.
func (d *Deal) Apply(u DealUpdate, now time.Time) {
	if u.Status != nil {
		d.transitionTo(*u.Status, now)
	}
	if u.Title != nil {
		d.Title = *u.Title
	}
	if u.ClientID != nil {
		d.ClientID = *u.ClientID
	}
	if u.Amount != nil {
		d.Amount = *u.Amount
	}
	if u.AssignedTo != nil {
		assignee := *u.AssignedTo
		d.AssignedTo = &assignee
	}
	d.UpdatedAt = now
}

// transitionTo evaluates the crossing rule against the old status before assigning the new one.
// won <-> lost keeps ClosedAt as is.
func (d *Deal) transitionTo(next DealStatus, now time.Time) {
	wasClosed := d.Status.IsClosed()
	switch {
	case next.IsClosed() && !wasClosed:
		closedAt := now
		d.ClosedAt = &closedAt
	case !next.IsClosed() && wasClosed:
		d.ClosedAt = nil
	}
	d.Status = next
}

// DealFilter narrows a deal listing. Nil fields are ignored; set fields are combined with AND.
type DealFilter struct {
	Status     *DealStatus
	ClientID   *int64
	AssignedTo *int64
}

// Matches reports whether d satisfies every set field of f.
func (f DealFilter) Matches(d Deal) bool {
	if f.Status != nil && d.Status != *f.Status {
		return false
	}
	if f.ClientID != nil && d.ClientID != *f.ClientID {
		return false
	}
	if f.AssignedTo != nil && (d.AssignedTo == nil || *d.AssignedTo != *f.AssignedTo) {
		return false
	}
	return true
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title must not be empty", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(title) > MaxDealTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", apperrors.ErrValidation, MaxDealTitleLength)
	}
	return nil
}

// ValidateDealAmount checks that amount fits the stored NUMERIC(12,2) column:
// non-negative, at most two decimal places and below 10^10.
func ValidateDealAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if !amount.Equal(amount.Round(DealAmountScale)) {
		return fmt.Errorf("%w: amount must have at most %d decimal places", apperrors.ErrValidation, DealAmountScale)
	}
	if amount.GreaterThanOrEqual(DealAmountLimit) {
		return fmt.Errorf("%w: amount must be less than %s", apperrors.ErrValidation, DealAmountLimit.String())
	}
	return nil
}
