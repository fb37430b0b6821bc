package models

import "time"

// Status is the lifecycle state of a lot, derived from its time window
// unless an Unsold override is set.
type Status string

const (
	StatusUpcoming Status = "Upcoming"
	StatusOpen     Status = "Open"
	StatusClosed   Status = "Closed"
	StatusUnsold   Status = "Unsold"
)

// Employee represents a participant in the auction
type Employee struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Admin      bool   `json:"admin"`
}

// Lot represents an auction item. StartTime, EndTime and LastBidTime are
// nil when the underlying dataset field is blank.
type Lot struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	StartPrice      int64      `json:"start_price"`
	CurrentPrice    int64      `json:"current_price"`
	Status          Status     `json:"status"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	LastBidTime     *time.Time `json:"last_bid_time"`
	Brand           string     `json:"brand"`
	Description     string     `json:"description"`
	BidsCount       int64      `json:"bids_count"`
	HighestBidderID string     `json:"highest_bidder_id"`
}

// Bid represents an accepted offer against a lot. Bids are append-only:
// once committed they are never mutated or deleted.
type Bid struct {
	ID        int64     `json:"id"`
	LotID     int64     `json:"lot_id"`
	BidderID  string    `json:"bidder_id"`
	Amount    int64     `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// BidResult is the outcome of a committed ledger transaction.
type BidResult struct {
	BidID        int64      `json:"bid_id"`
	NewPrice     int64      `json:"new_price"`
	Timestamp    time.Time  `json:"timestamp"`
	TimeExtended bool       `json:"time_extended"`
	NewEndTime   *time.Time `json:"new_end_time,omitempty"`
}

// LotHistory groups one bidder's bids on a single lot for history views.
type LotHistory struct {
	LotID     int64  `json:"lot_id"`
	LotName   string `json:"lot_name"`
	IsWinning bool   `json:"is_winning"`
	BidCount  int    `json:"bid_count"`
	Bids      []Bid  `json:"bids"`
}
