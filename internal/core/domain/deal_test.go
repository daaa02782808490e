package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/crm_backend/internal/apperrors"
	"github.com/SscSPs/crm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusPtr(s domain.DealStatus) *domain.DealStatus {
	return &s
}

func stringPtr(s string) *string {
	return &s
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func newTestDeal(t *testing.T, status domain.DealStatus, at time.Time) domain.Deal {
	t.Helper()
	deal, err := domain.NewDeal(domain.NewDealParams{
		Title:     "Office chairs",
		ClientID:  1,
		Amount:    decimal.NewFromInt(100),
		Status:    status,
		CreatedBy: 7,
	}, at)
	require.NoError(t, err)
	return deal
}

func TestNewDeal(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("defaults to new and stays open", func(t *testing.T) {
		deal := newTestDeal(t, "", now)
		assert.Equal(t, domain.DealStatusNew, deal.Status)
		assert.Nil(t, deal.ClosedAt)
		assert.Equal(t, now, deal.CreatedAt)
		assert.Equal(t, now, deal.UpdatedAt)
		assert.Equal(t, int64(7), deal.CreatedBy)
	})

	t.Run("created as won is closed immediately", func(t *testing.T) {
		deal := newTestDeal(t, domain.DealStatusWon, now)
		require.NotNil(t, deal.ClosedAt)
		assert.Equal(t, now, *deal.ClosedAt)
	})

	t.Run("created as lost is closed immediately", func(t *testing.T) {
		deal := newTestDeal(t, domain.DealStatusLost, now)
		require.NotNil(t, deal.ClosedAt)
	})

	invalid := []struct {
		name   string
		params domain.NewDealParams
	}{
		{"empty title", domain.NewDealParams{Title: "  ", ClientID: 1}},
		{"title too long", domain.NewDealParams{Title: strings.Repeat("x", 256), ClientID: 1}},
		{"negative amount", domain.NewDealParams{Title: "t", ClientID: 1, Amount: decimal.NewFromInt(-1)}},
		{"amount with three decimals", domain.NewDealParams{Title: "t", ClientID: 1, Amount: decimal.RequireFromString("0.005")}},
		{"amount at limit", domain.NewDealParams{Title: "t", ClientID: 1, Amount: decimal.RequireFromString("10000000000")}},
		{"unknown status", domain.NewDealParams{Title: "t", ClientID: 1, Status: "archived"}},
		{"missing client", domain.NewDealParams{Title: "t"}},
		{"bad assignee", domain.NewDealParams{Title: "t", ClientID: 1, AssignedTo: domain.Int64Ptr(0)}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewDeal(tt.params, now)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	t.Run("largest storable amount is accepted", func(t *testing.T) {
		deal, err := domain.NewDeal(domain.NewDealParams{Title: "t", ClientID: 1, Amount: decimal.RequireFromString("9999999999.99")}, now)
		require.NoError(t, err)
		assert.Equal(t, "9999999999.99", deal.Amount.String())
	})

	t.Run("trailing zeros do not count as extra decimals", func(t *testing.T) {
		_, err := domain.NewDeal(domain.NewDealParams{Title: "t", ClientID: 1, Amount: decimal.RequireFromString("1500.5000")}, now)
		assert.NoError(t, err)
	})

	t.Run("title of exactly max length is accepted", func(t *testing.T) {
		_, err := domain.NewDeal(domain.NewDealParams{Title: strings.Repeat("я", domain.MaxDealTitleLength), ClientID: 1}, now)
		assert.NoError(t, err)
	})
}

func TestDeal_ApplyStatusTransitions(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := created.Add(time.Hour)

	tests := []struct {
		name        string
		from        domain.DealStatus
		to          domain.DealStatus
		wantClosed  bool
		wantClosing *time.Time // expected ClosedAt when wantClosed
	}{
		{name: "new to negotiation stays open", from: domain.DealStatusNew, to: domain.DealStatusNegotiation},
		{name: "negotiation to won closes now", from: domain.DealStatusNegotiation, to: domain.DealStatusWon, wantClosed: true, wantClosing: &later},
		{name: "new to lost closes now", from: domain.DealStatusNew, to: domain.DealStatusLost, wantClosed: true, wantClosing: &later},
		{name: "won to lost keeps first close time", from: domain.DealStatusWon, to: domain.DealStatusLost, wantClosed: true, wantClosing: &created},
		{name: "lost to won keeps first close time", from: domain.DealStatusLost, to: domain.DealStatusWon, wantClosed: true, wantClosing: &created},
		{name: "won to won keeps first close time", from: domain.DealStatusWon, to: domain.DealStatusWon, wantClosed: true, wantClosing: &created},
		{name: "won to new reopens", from: domain.DealStatusWon, to: domain.DealStatusNew},
		{name: "lost to negotiation reopens", from: domain.DealStatusLost, to: domain.DealStatusNegotiation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deal := newTestDeal(t, tt.from, created)
			deal.Apply(domain.DealUpdate{Status: statusPtr(tt.to)}, later)

			assert.Equal(t, tt.to, deal.Status)
			assert.Equal(t, later, deal.UpdatedAt)
			if !tt.wantClosed {
				assert.Nil(t, deal.ClosedAt)
				return
			}
			require.NotNil(t, deal.ClosedAt)
			assert.Equal(t, *tt.wantClosing, *deal.ClosedAt)
		})
	}
}

func TestDeal_ApplyPipelineClosesOnce(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	deal := newTestDeal(t, domain.DealStatusNew, t0)

	deal.Apply(domain.DealUpdate{Status: statusPtr(domain.DealStatusNegotiation)}, t0.Add(time.Minute))
	assert.Nil(t, deal.ClosedAt)

	wonAt := t0.Add(2 * time.Minute)
	deal.Apply(domain.DealUpdate{Status: statusPtr(domain.DealStatusWon)}, wonAt)
	require.NotNil(t, deal.ClosedAt)
	assert.Equal(t, wonAt, *deal.ClosedAt)

	// Amount-only update must not touch the close time.
	deal.Apply(domain.DealUpdate{Amount: decimalPtr(decimal.NewFromInt(500))}, t0.Add(3*time.Minute))
	require.NotNil(t, deal.ClosedAt)
	assert.Equal(t, wonAt, *deal.ClosedAt)
	assert.True(t, deal.Amount.Equal(decimal.NewFromInt(500)))
}

func TestDeal_ApplyPartialFields(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	deal := newTestDeal(t, domain.DealStatusNew, t0)

	deal.Apply(domain.DealUpdate{
		Title:      stringPtr("Standing desks"),
		ClientID:   domain.Int64Ptr(9),
		AssignedTo: domain.Int64Ptr(3),
	}, t0.Add(time.Minute))

	assert.Equal(t, "Standing desks", deal.Title)
	assert.Equal(t, int64(9), deal.ClientID)
	require.NotNil(t, deal.AssignedTo)
	assert.Equal(t, int64(3), *deal.AssignedTo)
	assert.True(t, deal.Amount.Equal(decimal.NewFromInt(100)), "amount not supplied, must be unchanged")
	assert.Equal(t, domain.DealStatusNew, deal.Status)
	assert.Equal(t, int64(7), deal.CreatedBy)
	assert.Equal(t, t0, deal.CreatedAt)
}

func TestDealUpdate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		update  domain.DealUpdate
		wantErr bool
	}{
		{name: "empty update", update: domain.DealUpdate{}},
		{name: "valid status", update: domain.DealUpdate{Status: statusPtr(domain.DealStatusLost)}},
		{name: "zero amount", update: domain.DealUpdate{Amount: decimalPtr(decimal.Zero)}},
		{name: "invalid status", update: domain.DealUpdate{Status: statusPtr("closed")}, wantErr: true},
		{name: "empty title", update: domain.DealUpdate{Title: stringPtr("")}, wantErr: true},
		{name: "negative amount", update: domain.DealUpdate{Amount: decimalPtr(decimal.NewFromFloat(-0.01))}, wantErr: true},
		{name: "two decimal amount", update: domain.DealUpdate{Amount: decimalPtr(decimal.RequireFromString("0.01"))}},
		{name: "three decimal amount", update: domain.DealUpdate{Amount: decimalPtr(decimal.RequireFromString("12.345"))}, wantErr: true},
		{name: "amount too large", update: domain.DealUpdate{Amount: decimalPtr(decimal.RequireFromString("99999999999999999999.999"))}, wantErr: true},
		{name: "non-positive client", update: domain.DealUpdate{ClientID: domain.Int64Ptr(-2)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.update.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDealFilter_Matches(t *testing.T) {
	deal := domain.Deal{ClientID: 5, Status: domain.DealStatusWon, AssignedTo: domain.Int64Ptr(2)}
	unassigned := domain.Deal{ClientID: 5, Status: domain.DealStatusWon}

	assert.True(t, domain.DealFilter{}.Matches(deal))
	assert.True(t, domain.DealFilter{Status: statusPtr(domain.DealStatusWon), ClientID: domain.Int64Ptr(5)}.Matches(deal))
	assert.False(t, domain.DealFilter{Status: statusPtr(domain.DealStatusWon), ClientID: domain.Int64Ptr(6)}.Matches(deal))
	assert.False(t, domain.DealFilter{Status: statusPtr(domain.DealStatusLost), ClientID: domain.Int64Ptr(5)}.Matches(deal))
	assert.True(t, domain.DealFilter{AssignedTo: domain.Int64Ptr(2)}.Matches(deal))
	assert.False(t, domain.DealFilter{AssignedTo: domain.Int64Ptr(2)}.Matches(unassigned))
}
