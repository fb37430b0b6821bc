package catalog

import (
	"context"
	"testing"
	"time"

	"auction-ledger/internal/auctionerrors"
	"auction-ledger/internal/models"
	"auction-ledger/internal/store"

	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) (*Catalog, *store.LotStore) {
	t.Helper()
	lots, err := store.NewLotStore(t.TempDir(), 2*time.Second, time.UTC)
	require.NoError(t, err)
	return New(lots), lots
}

func requireBusinessCode(t *testing.T, err error, code auctionerrors.Code) {
	t.Helper()
	require.Error(t, err)
	be, ok := auctionerrors.AsBusiness(err)
	require.True(t, ok, "expected a business error, got %v", err)
	require.Equal(t, code, be.Code)
}

func TestCatalog_CreateLot(t *testing.T) {
	t.Parallel()

	c, lots := newTestCatalog(t)
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	id, err := c.CreateLot(context.Background(), NewLotParams{
		Name:       "espresso machine",
		StartPrice: 500,
		StartTime:  &start,
		EndTime:    &end,
		Brand:      "Rancilio",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	id2, err := c.CreateLot(context.Background(), NewLotParams{Name: "second", StartPrice: 100})
	require.NoError(t, err)
	require.Equal(t, int64(2), id2)

	got, err := lots.Load()
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, models.StatusUpcoming, got[0].Status)
	require.Equal(t, int64(500), got[0].CurrentPrice)
	require.Equal(t, int64(0), got[0].BidsCount)
	require.Empty(t, got[0].HighestBidderID)
}

func TestCatalog_CreateLot_Validation(t *testing.T) {
	t.Parallel()

	c, _ := newTestCatalog(t)

	_, err := c.CreateLot(context.Background(), NewLotParams{Name: "", StartPrice: 100})
	requireBusinessCode(t, err, auctionerrors.CodeInvalidData)

	_, err = c.CreateLot(context.Background(), NewLotParams{Name: "lot", StartPrice: 0})
	requireBusinessCode(t, err, auctionerrors.CodeInvalidData)
}

func TestCatalog_UpdateLot(t *testing.T) {
	t.Parallel()

	c, lots := newTestCatalog(t)
	id, err := c.CreateLot(context.Background(), NewLotParams{Name: "lot", StartPrice: 100})
	require.NoError(t, err)

	name := "renamed lot"
	price := int64(250)
	require.NoError(t, c.UpdateLot(context.Background(), id, UpdateLotParams{
		Name:       &name,
		StartPrice: &price,
	}))

	got, err := lots.Load()
	require.NoError(t, err)
	require.Equal(t, "renamed lot", got[0].Name)
	require.Equal(t, int64(250), got[0].StartPrice)
	require.Equal(t, int64(250), got[0].CurrentPrice)

	err = c.UpdateLot(context.Background(), 99, UpdateLotParams{Name: &name})
	requireBusinessCode(t, err, auctionerrors.CodeProductNotFound)
}

// Once bidding has started, the ledger owns price and the time window.
func TestCatalog_UpdateLot_LockedAfterFirstBid(t *testing.T) {
	t.Parallel()

	c, lots := newTestCatalog(t)
	id, err := c.CreateLot(context.Background(), NewLotParams{Name: "lot", StartPrice: 100})
	require.NoError(t, err)

	// Simulate a committed bid.
	all, tok, err := lots.Acquire(context.Background())
	require.NoError(t, err)
	all[0].BidsCount = 1
	all[0].CurrentPrice = 150
	all[0].HighestBidderID = "emp1"
	require.NoError(t, lots.Commit(tok, all))

	price := int64(999)
	err = c.UpdateLot(context.Background(), id, UpdateLotParams{StartPrice: &price})
	requireBusinessCode(t, err, auctionerrors.CodeForbiddenAction)

	end := time.Now().Add(time.Hour)
	err = c.UpdateLot(context.Background(), id, UpdateLotParams{EndTime: &end})
	requireBusinessCode(t, err, auctionerrors.CodeForbiddenAction)

	// Descriptive fields stay editable.
	desc := "still editable"
	require.NoError(t, c.UpdateLot(context.Background(), id, UpdateLotParams{Description: &desc}))
}

func TestCatalog_DeleteLot(t *testing.T) {
	t.Parallel()

	c, lots := newTestCatalog(t)
	id, err := c.CreateLot(context.Background(), NewLotParams{Name: "lot", StartPrice: 100})
	require.NoError(t, err)

	require.NoError(t, c.DeleteLot(context.Background(), id))
	got, err := lots.Load()
	require.NoError(t, err)
	require.Empty(t, got)

	// Deleting an absent lot is not an error.
	require.NoError(t, c.DeleteLot(context.Background(), id))
}

func TestCatalog_DeleteLot_BlockedWithBids(t *testing.T) {
	t.Parallel()

	c, lots := newTestCatalog(t)
	id, err := c.CreateLot(context.Background(), NewLotParams{Name: "lot", StartPrice: 100})
	require.NoError(t, err)

	all, tok, err := lots.Acquire(context.Background())
	require.NoError(t, err)
	all[0].BidsCount = 3
	require.NoError(t, lots.Commit(tok, all))

	err = c.DeleteLot(context.Background(), id)
	requireBusinessCode(t, err, auctionerrors.CodeForbiddenAction)
}

func TestCatalog_MarkUnsold(t *testing.T) {
	t.Parallel()

	c, lots := newTestCatalog(t)
	id, err := c.CreateLot(context.Background(), NewLotParams{Name: "lot", StartPrice: 100})
	require.NoError(t, err)

	require.NoError(t, c.MarkUnsold(context.Background(), id))

	got, err := lots.Load()
	require.NoError(t, err)
	require.Equal(t, models.StatusUnsold, got[0].Status)

	err = c.MarkUnsold(context.Background(), 99)
	requireBusinessCode(t, err, auctionerrors.CodeProductNotFound)
}
