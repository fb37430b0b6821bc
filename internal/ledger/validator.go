package ledger

import (
	"fmt"
	"time"

	"auction-ledger/internal/auctionerrors"
	"auction-ledger/internal/models"
	"auction-ledger/internal/status"
)

// BidCeiling is the maximum accepted bid amount.
const BidCeiling = 999999

// minBidInterval is the per-bidder flood throttle window.
const minBidInterval = time.Second

// validateBid checks a candidate bid against a lot snapshot and the lot's
// most recent committed bid. Rules run in a fixed order and the first
// failing rule wins. mostRecent is nil when the lot has no bids.
//
// It runs inside the ledger transaction against a snapshot read under
// lock, so a passing result holds until the commit.
func validateBid(lot models.Lot, mostRecent *models.Bid, bidderID string, amount int64, now time.Time) error {
	if status.Derive(lot, now) != models.StatusOpen {
		return auctionerrors.NewBusiness(auctionerrors.CodeAuctionNotActive, "auction is not active")
	}

	if lot.BidsCount == 0 {
		if amount < lot.StartPrice {
			return auctionerrors.NewBusiness(auctionerrors.CodeInvalidBidAmount,
				fmt.Sprintf("first bid must be at least the starting price %d", lot.StartPrice))
		}
	} else if amount <= lot.CurrentPrice {
		return auctionerrors.NewBusiness(auctionerrors.CodeInvalidBidAmount,
			fmt.Sprintf("bid must be higher than the current price %d", lot.CurrentPrice))
	}

	if amount > BidCeiling {
		return auctionerrors.NewBusiness(auctionerrors.CodeInvalidBidAmount,
			fmt.Sprintf("bid must not exceed %d", BidCeiling))
	}

	if lot.HighestBidderID != "" && bidderID == lot.HighestBidderID {
		return auctionerrors.NewBusiness(auctionerrors.CodeAlreadyHighestBidder,
			"you are already the highest bidder")
	}

	if mostRecent != nil && mostRecent.BidderID == bidderID &&
		now.Sub(mostRecent.Timestamp) < minBidInterval {
		return auctionerrors.NewBusiness(auctionerrors.CodeBidTooFrequent,
			"bidding too frequently, please wait a moment")
	}

	return nil
}
