// Package ledger implements the transactional bid ledger: the locked
// read-modify-write sequence that commits a bid against the lot and bid
// datasets.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"auction-ledger/internal/auctionerrors"
	"auction-ledger/internal/models"
	"auction-ledger/internal/status"
	"auction-ledger/internal/store"
	"auction-ledger/monitoring"
	"auction-ledger/utils"
)

// Ledger coordinates bid commits across the lot and bid stores. One
// instance is constructed at startup and shared by all request handlers;
// the stores' file locks serialize the write path.
type Ledger struct {
	lots *store.LotStore
	bids *store.BidStore
	now  func() time.Time
}

// New creates a Ledger over the given stores.
func New(lots *store.LotStore, bids *store.BidStore) *Ledger {
	return &Ledger{
		lots: lots,
		bids: bids,
		now:  time.Now,
	}
}

// PlaceBid validates and commits a bid. It acquires the lot store lock,
// then the bid store lock, always in that order, and re-validates against
// the freshly read snapshots so that of N concurrent bidders racing for
// the same price exactly one commits. Both locks are released on every
// exit path.
func (l *Ledger) PlaceBid(ctx context.Context, lotID int64, bidderID string, amount int64) (models.BidResult, error) {
	if lotID <= 0 || bidderID == "" {
		return models.BidResult{}, auctionerrors.NewBusiness(auctionerrors.CodeInvalidData,
			"missing lot id or bidder id")
	}
	if amount <= 0 {
		return models.BidResult{}, auctionerrors.NewBusiness(auctionerrors.CodeInvalidBidAmount,
			"bid amount must be positive")
	}

	lockStart := time.Now()
	lots, lotTok, err := l.lots.Acquire(ctx)
	if err != nil {
		return models.BidResult{}, err
	}
	defer lotTok.Release()

	bids, bidTok, err := l.bids.Acquire(ctx)
	if err != nil {
		return models.BidResult{}, err
	}
	defer bidTok.Release()
	monitoring.LockWait(time.Since(lockStart))

	idx := -1
	for i := range lots {
		if lots[i].ID == lotID {
			idx = i
			break
		}
	}
	if idx < 0 {
		monitoring.BidRejected(string(auctionerrors.CodeProductNotFound))
		return models.BidResult{}, auctionerrors.NewBusiness(auctionerrors.CodeProductNotFound,
			fmt.Sprintf("lot %d not found", lotID))
	}
	lot := lots[idx]

	now := l.now()
	if err := validateBid(lot, mostRecentBid(bids, lotID), bidderID, amount, now); err != nil {
		if be, ok := auctionerrors.AsBusiness(err); ok {
			monitoring.BidRejected(string(be.Code))
		}
		return models.BidResult{}, err
	}

	bid := models.Bid{
		ID:        nextBidID(bids),
		LotID:     lotID,
		BidderID:  bidderID,
		Amount:    amount,
		Timestamp: now,
	}
	bids = append(bids, bid)

	lot.CurrentPrice = amount
	lot.HighestBidderID = bidderID
	lastBid := now
	lot.LastBidTime = &lastBid
	lot.BidsCount++

	// The extension is computed from the end time as it stood before this
	// bid. A lot with no parseable end time cannot extend; the bid itself
	// stays accepted.
	result := models.BidResult{
		BidID:     bid.ID,
		NewPrice:  amount,
		Timestamp: now,
	}
	if newEnd, extended := evaluateExtension(lot.EndTime, now); extended {
		lot.EndTime = newEnd
		result.TimeExtended = true
		result.NewEndTime = newEnd
		monitoring.SnipeExtension()
	} else if lot.EndTime == nil {
		utils.Warn("lot has no end time, skipping anti-sniper check", map[string]any{
			"lot_id": lotID,
		})
	}
	lots[idx] = lot

	// Persist bids first, then lots; each commit releases its own lock, so
	// release order is the reverse of acquisition.
	if err := l.bids.Commit(bidTok, bids); err != nil {
		return models.BidResult{}, err
	}
	if err := l.lots.Commit(lotTok, lots); err != nil {
		return models.BidResult{}, err
	}

	monitoring.BidAccepted()
	utils.Info("bid committed", map[string]any{
		"lot_id":        lotID,
		"bidder_id":     bidderID,
		"amount":        amount,
		"bid_id":        bid.ID,
		"time_extended": result.TimeExtended,
	})
	return result, nil
}

// GetLot returns the lot with a freshly derived status, or nil if absent.
// Reads do not take the store lock.
func (l *Ledger) GetLot(lotID int64) (*models.Lot, error) {
	lots, err := l.lots.Load()
	if err != nil {
		return nil, err
	}
	now := l.now()
	for i := range lots {
		if lots[i].ID == lotID {
			lot := lots[i]
			lot.Status = status.Derive(lot, now)
			return &lot, nil
		}
	}
	return nil, nil
}

// ListLots returns all lots with freshly derived statuses. Closed and
// unsold lots come first, latest end time first; the rest keep dataset
// order.
func (l *Ledger) ListLots() ([]models.Lot, error) {
	lots, err := l.lots.Load()
	if err != nil {
		return nil, err
	}
	now := l.now()
	var finished, running []models.Lot
	for i := range lots {
		lot := lots[i]
		lot.Status = status.Derive(lot, now)
		if lot.Status == models.StatusClosed || lot.Status == models.StatusUnsold {
			finished = append(finished, lot)
		} else {
			running = append(running, lot)
		}
	}
	sort.SliceStable(finished, func(i, j int) bool {
		ei, ej := finished[i].EndTime, finished[j].EndTime
		switch {
		case ei == nil:
			return false
		case ej == nil:
			return true
		default:
			return ei.After(*ej)
		}
	})
	return append(finished, running...), nil
}

// RecentBids returns up to limit bids for a lot, newest first.
func (l *Ledger) RecentBids(lotID int64, limit int) ([]models.Bid, error) {
	bids, err := l.bids.Load()
	if err != nil {
		return nil, err
	}
	matched := make([]models.Bid, 0)
	for _, b := range bids {
		if b.LotID == lotID {
			matched = append(matched, b)
		}
	}
	sortNewestFirst(matched)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// BidsByBidder returns the bidder's bids grouped per lot, newest lot
// first, with a winning flag per lot for history views.
func (l *Ledger) BidsByBidder(bidderID string) ([]models.LotHistory, error) {
	bids, err := l.bids.Load()
	if err != nil {
		return nil, err
	}
	mine := make([]models.Bid, 0)
	for _, b := range bids {
		if b.BidderID == bidderID {
			mine = append(mine, b)
		}
	}
	if len(mine) == 0 {
		return []models.LotHistory{}, nil
	}
	sortNewestFirst(mine)

	lots, err := l.lots.Load()
	if err != nil {
		return nil, err
	}
	now := l.now()
	lotByID := make(map[int64]models.Lot, len(lots))
	for _, lot := range lots {
		lot.Status = status.Derive(lot, now)
		lotByID[lot.ID] = lot
	}

	var history []models.LotHistory
	groupIdx := make(map[int64]int)
	for _, b := range mine {
		i, seen := groupIdx[b.LotID]
		if !seen {
			entry := models.LotHistory{
				LotID:   b.LotID,
				LotName: fmt.Sprintf("unknown lot (%d)", b.LotID),
			}
			if lot, ok := lotByID[b.LotID]; ok {
				entry.LotName = lot.Name
				entry.IsWinning = lot.HighestBidderID == bidderID && lot.Status != models.StatusUnsold
			}
			history = append(history, entry)
			i = len(history) - 1
			groupIdx[b.LotID] = i
		}
		history[i].Bids = append(history[i].Bids, b)
		history[i].BidCount++
	}
	return history, nil
}

// HasBids reports whether the bidder has any committed bids. The web layer
// uses it for the first-bid confirmation prompt.
func (l *Ledger) HasBids(bidderID string) (bool, error) {
	bids, err := l.bids.Load()
	if err != nil {
		return false, err
	}
	for _, b := range bids {
		if b.BidderID == bidderID {
			return true, nil
		}
	}
	return false, nil
}

// mostRecentBid returns the latest committed bid for the lot, preferring
// the higher id on equal timestamps, or nil if the lot has no bids.
func mostRecentBid(bids []models.Bid, lotID int64) *models.Bid {
	var recent *models.Bid
	for i := range bids {
		b := &bids[i]
		if b.LotID != lotID {
			continue
		}
		if recent == nil || b.Timestamp.After(recent.Timestamp) ||
			(b.Timestamp.Equal(recent.Timestamp) && b.ID > recent.ID) {
			recent = b
		}
	}
	return recent
}

// nextBidID assigns ids monotonically per bid store.
func nextBidID(bids []models.Bid) int64 {
	var max int64
	for _, b := range bids {
		if b.ID > max {
			max = b.ID
		}
	}
	return max + 1
}

func sortNewestFirst(bids []models.Bid) {
	sort.SliceStable(bids, func(i, j int) bool {
		if !bids[i].Timestamp.Equal(bids[j].Timestamp) {
			return bids[i].Timestamp.After(bids[j].Timestamp)
		}
		return bids[i].ID > bids[j].ID
	})
}
