// Package catalog implements the admin-facing lot lifecycle: create,
// edit, delete and the Unsold override. Bidding itself never goes through
// this package.
package catalog

import (
	"context"
	"fmt"
	"time"

	"auction-ledger/internal/auctionerrors"
	"auction-ledger/internal/models"
	"auction-ledger/internal/store"
)

// Catalog mutates the lot dataset under its store lock.
type Catalog struct {
	lots *store.LotStore
}

// New creates a Catalog over the lot store.
func New(lots *store.LotStore) *Catalog {
	return &Catalog{lots: lots}
}

// NewLotParams carries the admin-supplied fields for a new lot.
type NewLotParams struct {
	Name        string
	StartPrice  int64
	StartTime   *time.Time
	EndTime     *time.Time
	Brand       string
	Description string
}

// UpdateLotParams carries optional field updates; nil means unchanged.
type UpdateLotParams struct {
	Name        *string
	StartPrice  *int64
	StartTime   *time.Time
	EndTime     *time.Time
	Brand       *string
	Description *string
}

// CreateLot appends a new lot with the next id and the standard defaults:
// Upcoming status, current price equal to start price, zero bids.
func (c *Catalog) CreateLot(ctx context.Context, params NewLotParams) (int64, error) {
	if params.Name == "" {
		return 0, auctionerrors.NewBusiness(auctionerrors.CodeInvalidData, "lot name is required")
	}
	if params.StartPrice <= 0 {
		return 0, auctionerrors.NewBusiness(auctionerrors.CodeInvalidData, "start price must be positive")
	}

	lots, tok, err := c.lots.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer tok.Release()

	var maxID int64
	for _, lot := range lots {
		if lot.ID > maxID {
			maxID = lot.ID
		}
	}
	lot := models.Lot{
		ID:           maxID + 1,
		Name:         params.Name,
		StartPrice:   params.StartPrice,
		CurrentPrice: params.StartPrice,
		Status:       models.StatusUpcoming,
		StartTime:    params.StartTime,
		EndTime:      params.EndTime,
		Brand:        params.Brand,
		Description:  params.Description,
	}
	lots = append(lots, lot)

	if err := c.lots.Commit(tok, lots); err != nil {
		return 0, err
	}
	return lot.ID, nil
}

// UpdateLot applies field updates to an existing lot. Price and time
// window edits are allowed only before bidding starts; once a bid has
// been committed the ledger owns those fields.
func (c *Catalog) UpdateLot(ctx context.Context, lotID int64, params UpdateLotParams) error {
	lots, tok, err := c.lots.Acquire(ctx)
	if err != nil {
		return err
	}
	defer tok.Release()

	idx := findLot(lots, lotID)
	if idx < 0 {
		return auctionerrors.NewBusiness(auctionerrors.CodeProductNotFound,
			fmt.Sprintf("lot %d not found", lotID))
	}
	lot := lots[idx]

	if lot.BidsCount > 0 && (params.StartPrice != nil || params.StartTime != nil || params.EndTime != nil) {
		return auctionerrors.NewBusiness(auctionerrors.CodeForbiddenAction,
			"price and time window cannot change once bidding has started")
	}

	if params.Name != nil {
		if *params.Name == "" {
			return auctionerrors.NewBusiness(auctionerrors.CodeInvalidData, "lot name is required")
		}
		lot.Name = *params.Name
	}
	if params.StartPrice != nil {
		if *params.StartPrice <= 0 {
			return auctionerrors.NewBusiness(auctionerrors.CodeInvalidData, "start price must be positive")
		}
		lot.StartPrice = *params.StartPrice
		lot.CurrentPrice = *params.StartPrice
	}
	if params.StartTime != nil {
		lot.StartTime = params.StartTime
	}
	if params.EndTime != nil {
		lot.EndTime = params.EndTime
	}
	if params.Brand != nil {
		lot.Brand = *params.Brand
	}
	if params.Description != nil {
		lot.Description = *params.Description
	}
	lots[idx] = lot

	return c.lots.Commit(tok, lots)
}

// DeleteLot hard-deletes a lot. Only lots without bids may be removed;
// the bid history of everything else is immutable.
func (c *Catalog) DeleteLot(ctx context.Context, lotID int64) error {
	lots, tok, err := c.lots.Acquire(ctx)
	if err != nil {
		return err
	}
	defer tok.Release()

	idx := findLot(lots, lotID)
	if idx < 0 {
		// Already gone.
		return nil
	}
	if lots[idx].BidsCount > 0 {
		return auctionerrors.NewBusiness(auctionerrors.CodeForbiddenAction,
			"cannot delete a lot that has bids")
	}
	lots = append(lots[:idx], lots[idx+1:]...)

	return c.lots.Commit(tok, lots)
}

// MarkUnsold sets the terminal Unsold override, after which no bid is
// ever accepted for the lot.
func (c *Catalog) MarkUnsold(ctx context.Context, lotID int64) error {
	lots, tok, err := c.lots.Acquire(ctx)
	if err != nil {
		return err
	}
	defer tok.Release()

	idx := findLot(lots, lotID)
	if idx < 0 {
		return auctionerrors.NewBusiness(auctionerrors.CodeProductNotFound,
			fmt.Sprintf("lot %d not found", lotID))
	}
	lots[idx].Status = models.StatusUnsold

	return c.lots.Commit(tok, lots)
}

func findLot(lots []models.Lot, lotID int64) int {
	for i := range lots {
		if lots[i].ID == lotID {
			return i
		}
	}
	return -1
}
