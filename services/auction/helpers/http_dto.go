package helpers

// Request/Response DTOs
type PlaceBidRequest struct {
	LotID    int64  `json:"lot_id" binding:"required"`
	BidderID string `json:"bidder_id" binding:"required"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
}

type BidResultResponse struct {
	BidID        int64  `json:"bid_id"`
	NewPrice     int64  `json:"new_price"`
	Timestamp    string `json:"timestamp"`
	TimeExtended bool   `json:"time_extended"`
	NewEndTime   string `json:"new_end_time,omitempty"`
}

type LotResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	StartPrice      int64  `json:"start_price"`
	CurrentPrice    int64  `json:"current_price"`
	Status          string `json:"status"`
	StartTime       string `json:"start_time,omitempty"`
	EndTime         string `json:"end_time,omitempty"`
	LastBidTime     string `json:"last_bid_time,omitempty"`
	Brand           string `json:"brand,omitempty"`
	Description     string `json:"description,omitempty"`
	BidsCount       int64  `json:"bids_count"`
	HighestBidderID string `json:"highest_bidder_id,omitempty"`
	WinnerName      string `json:"winner_name,omitempty"`
	BidIncrement    int64  `json:"bid_increment,omitempty"`
}

type BidResponse struct {
	BidID      int64  `json:"bid_id"`
	LotID      int64  `json:"lot_id"`
	BidderID   string `json:"bidder_id"`
	BidderName string `json:"bidder_name,omitempty"`
	Amount     int64  `json:"amount"`
	Timestamp  string `json:"timestamp"`
}

type CreateLotRequest struct {
	Name        string `json:"name" binding:"required"`
	StartPrice  int64  `json:"start_price" binding:"required,gt=0"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Description string `json:"description,omitempty"`
}

type UpdateLotRequest struct {
	Name        *string `json:"name,omitempty"`
	StartPrice  *int64  `json:"start_price,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	Brand       *string `json:"brand,omitempty"`
	Description *string `json:"description,omitempty"`
}
