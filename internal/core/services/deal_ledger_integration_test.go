package services_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/SscSPs/crm_backend/internal/apperrors"
	"github.com/SscSPs/crm_backend/internal/core/domain"
	portssvc "github.com/SscSPs/crm_backend/internal/core/ports/services"
	"github.com/SscSPs/crm_backend/internal/core/services"
	"github.com/SscSPs/crm_backend/internal/platform/database"
	"github.com/SscSPs/crm_backend/internal/repositories/database/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ledgerFixture wires the deal ledger to an in-memory SQLite store with a controllable clock.
type ledgerFixture struct {
	ledger   portssvc.DealSvcFacade
	db       *sql.DB
	clock    time.Time
	userID   int64
	clientID int64
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &ledgerFixture{db: db, clock: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
	repos := sqlite.NewRepositoryProvider(db)

	user, err := repos.UserRepo.SaveUser(ctx, domain.User{
		Username: "manager", Email: "manager@example.com", PasswordHash: "x",
		Role: domain.RoleManager, IsActive: true, CreatedAt: f.clock, UpdatedAt: f.clock,
	})
	require.NoError(t, err)
	f.userID = user.UserID

	client, err := repos.ClientRepo.SaveClient(ctx, domain.Client{
		Name:        "Acme",
		AuditFields: domain.AuditFields{CreatedAt: f.clock, CreatedBy: f.userID, UpdatedAt: f.clock},
	})
	require.NoError(t, err)
	f.clientID = client.ClientID

	f.ledger = services.NewDealService(
		repos.DealRepo,
		services.WithClientLookup(repos.ClientRepo),
		services.WithUserLookup(repos.UserRepo),
		services.WithDealClock(func() time.Time { return f.clock }),
	)
	return f
}

func (f *ledgerFixture) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *ledgerFixture) create(t *testing.T, status domain.DealStatus, amount int64) *domain.Deal {
	t.Helper()
	deal, err := f.ledger.CreateDeal(context.Background(), domain.NewDealParams{
		Title:     "Deal",
		ClientID:  f.clientID,
		Amount:    decimal.NewFromInt(amount),
		Status:    status,
		CreatedBy: f.userID,
	})
	require.NoError(t, err)
	return deal
}

func (f *ledgerFixture) setStatus(t *testing.T, dealID int64, status domain.DealStatus) *domain.Deal {
	t.Helper()
	deal, err := f.ledger.UpdateDeal(context.Background(), dealID, domain.DealUpdate{Status: &status})
	require.NoError(t, err)
	return deal
}

func TestLedger_CreateWonSetsClosedAt(t *testing.T) {
	f := newLedgerFixture(t)

	deal := f.create(t, domain.DealStatusWon, 100)

	require.NotNil(t, deal.ClosedAt)
	assert.True(t, f.clock.Equal(*deal.ClosedAt))
}

func TestLedger_PipelineClosesOnceAtWon(t *testing.T) {
	f := newLedgerFixture(t)
	deal := f.create(t, domain.DealStatusNew, 100)
	assert.Nil(t, deal.ClosedAt)

	f.tick()
	deal = f.setStatus(t, deal.DealID, domain.DealStatusNegotiation)
	assert.Nil(t, deal.ClosedAt)

	wonAt := f.tick()
	deal = f.setStatus(t, deal.DealID, domain.DealStatusWon)
	require.NotNil(t, deal.ClosedAt)
	assert.True(t, wonAt.Equal(*deal.ClosedAt))

	// won -> lost keeps the first close time
	f.tick()
	deal = f.setStatus(t, deal.DealID, domain.DealStatusLost)
	require.NotNil(t, deal.ClosedAt)
	assert.True(t, wonAt.Equal(*deal.ClosedAt))

	stored, err := f.ledger.GetDeal(context.Background(), deal.DealID)
	require.NoError(t, err)
	require.NotNil(t, stored.ClosedAt)
	assert.True(t, wonAt.Equal(*stored.ClosedAt))
	assert.True(t, f.clock.Equal(stored.UpdatedAt))
}

func TestLedger_ReopenClearsClosedAt(t *testing.T) {
	f := newLedgerFixture(t)
	deal := f.create(t, domain.DealStatusWon, 100)

	f.tick()
	deal = f.setStatus(t, deal.DealID, domain.DealStatusNew)
	assert.Nil(t, deal.ClosedAt)

	stored, err := f.ledger.GetDeal(context.Background(), deal.DealID)
	require.NoError(t, err)
	assert.Nil(t, stored.ClosedAt)

	closedAgain := f.tick()
	deal = f.setStatus(t, deal.DealID, domain.DealStatusLost)
	require.NotNil(t, deal.ClosedAt)
	assert.True(t, closedAgain.Equal(*deal.ClosedAt))
}

func TestLedger_UpdateMissingDealLeavesLedgerUnchanged(t *testing.T) {
	f := newLedgerFixture(t)
	f.create(t, domain.DealStatusNew, 100)
	before, err := f.ledger.ListDeals(context.Background(), domain.DealFilter{})
	require.NoError(t, err)

	won := domain.DealStatusWon
	_, err = f.ledger.UpdateDeal(context.Background(), 9999, domain.DealUpdate{Status: &won})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	after, err := f.ledger.ListDeals(context.Background(), domain.DealFilter{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLedger_ListFiltersAreConjunctive(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	f.create(t, domain.DealStatusWon, 10)
	f.create(t, domain.DealStatusNew, 20)

	_, err := f.ledger.CreateDeal(ctx, domain.NewDealParams{Title: "Missing client", ClientID: 4242, CreatedBy: f.userID})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	won := domain.DealStatusWon
	deals, err := f.ledger.ListDeals(ctx, domain.DealFilter{Status: &won, ClientID: &f.clientID})
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, domain.DealStatusWon, deals[0].Status)
	assert.Equal(t, f.clientID, deals[0].ClientID)

	otherClient := f.clientID + 1
	deals, err = f.ledger.ListDeals(ctx, domain.DealFilter{Status: &won, ClientID: &otherClient})
	require.NoError(t, err)
	assert.Empty(t, deals)
}

func TestLedger_Stats(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	empty, err := f.ledger.GetDealStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Total)
	for _, status := range domain.DealStatuses {
		assert.Equal(t, 0, empty.ByStatus[status])
	}
	assert.True(t, empty.WonAmount.IsZero())
	assert.True(t, empty.AverageCheck.IsZero())

	f.create(t, domain.DealStatusWon, 100)
	f.create(t, domain.DealStatusWon, 200)
	f.create(t, domain.DealStatusNegotiation, 999)

	stats, err := f.ledger.GetDealStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, map[domain.DealStatus]int{
		domain.DealStatusNew:         0,
		domain.DealStatusNegotiation: 1,
		domain.DealStatusWon:         2,
		domain.DealStatusLost:        0,
	}, stats.ByStatus)
	assert.True(t, stats.WonAmount.Equal(decimal.NewFromInt(300)), "won amount %s", stats.WonAmount)
	assert.True(t, stats.AverageCheck.Equal(decimal.NewFromInt(150)), "average check %s", stats.AverageCheck)
}

func TestLedger_InactiveAssigneeRejected(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	_, err := f.db.Exec("UPDATE users SET is_active = 0 WHERE id = ?", f.userID)
	require.NoError(t, err)

	_, err = f.ledger.CreateDeal(ctx, domain.NewDealParams{
		Title: "Assigned", ClientID: f.clientID, AssignedTo: &f.userID, CreatedBy: f.userID,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLedger_Delete(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	deal := f.create(t, domain.DealStatusNew, 1)

	deleted, err := f.ledger.DeleteDeal(ctx, deal.DealID)
	require.NoError(t, err)
	assert.Equal(t, deal.DealID, deleted.DealID)

	_, err = f.ledger.GetDeal(ctx, deal.DealID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLedger_UnstorableAmountsLeaveStatsUnchanged(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	deal := f.create(t, domain.DealStatusWon, 100)

	for _, amount := range []string{"0.005", "99999999999999999999.999", "10000000000"} {
		_, err := f.ledger.CreateDeal(ctx, domain.NewDealParams{
			Title: "Deal", ClientID: f.clientID, Amount: decimal.RequireFromString(amount),
			Status: domain.DealStatusWon, CreatedBy: f.userID,
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation, "create with amount %s", amount)

		candidate := decimal.RequireFromString(amount)
		_, err = f.ledger.UpdateDeal(ctx, deal.DealID, domain.DealUpdate{Amount: &candidate})
		assert.ErrorIs(t, err, apperrors.ErrValidation, "update with amount %s", amount)
	}

	stats, err := f.ledger.GetDealStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.True(t, stats.WonAmount.Equal(decimal.NewFromInt(100)), "won amount %s", stats.WonAmount)
}
