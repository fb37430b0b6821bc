package store

import (
	"context"
	"path/filepath"
	"time"

	"auction-ledger/internal/models"
	"auction-ledger/utils"
)

var bidHeader = []string{"id", "product_id", "bidder_id", "amount", "bid_timestamp"}

// BidStore owns the append-only bid dataset.
type BidStore struct {
	fs  *fileStore
	loc *time.Location
}

// NewBidStore opens (creating if absent) the bid dataset under dataDir.
func NewBidStore(dataDir string, lockTimeout time.Duration, loc *time.Location) (*BidStore, error) {
	fs, err := newFileStore(filepath.Join(dataDir, "bids.csv"), bidHeader, lockTimeout)
	if err != nil {
		return nil, err
	}
	return &BidStore{fs: fs, loc: loc}, nil
}

// Acquire locks the dataset and returns its fully parsed contents.
func (s *BidStore) Acquire(ctx context.Context) ([]models.Bid, *ReleaseToken, error) {
	rows, tok, err := s.fs.acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	return s.decodeRows(rows), tok, nil
}

// Commit rewrites the dataset with bids and releases the lock.
func (s *BidStore) Commit(tok *ReleaseToken, bids []models.Bid) error {
	rows := make([][]string, 0, len(bids))
	for _, bid := range bids {
		rows = append(rows, s.encodeRow(bid))
	}
	return s.fs.commit(tok, rows)
}

// Load reads the dataset without locking.
func (s *BidStore) Load() ([]models.Bid, error) {
	rows, err := s.fs.read()
	if err != nil {
		return nil, err
	}
	return s.decodeRows(rows), nil
}

func (s *BidStore) decodeRows(rows [][]string) []models.Bid {
	bids := make([]models.Bid, 0, len(rows))
	for _, row := range rows {
		bid, ok := s.decodeRow(row)
		if !ok {
			utils.Warn("skipping malformed bid row", map[string]any{
				"dataset": s.fs.path,
				"row":     row,
			})
			continue
		}
		bids = append(bids, bid)
	}
	return bids
}

func (s *BidStore) decodeRow(row []string) (models.Bid, bool) {
	if len(row) < len(bidHeader) {
		return models.Bid{}, false
	}
	id, ok := parseIntField(row[0])
	if !ok {
		return models.Bid{}, false
	}
	lotID, ok := parseIntField(row[1])
	if !ok {
		return models.Bid{}, false
	}
	amount, ok := parseIntField(row[3])
	if !ok {
		return models.Bid{}, false
	}
	ts := parseTimestamp(row[4], s.loc)
	if ts == nil {
		return models.Bid{}, false
	}
	return models.Bid{
		ID:        id,
		LotID:     lotID,
		BidderID:  row[2],
		Amount:    amount,
		Timestamp: *ts,
	}, true
}

func (s *BidStore) encodeRow(bid models.Bid) []string {
	ts := bid.Timestamp
	return []string{
		formatInt(bid.ID),
		formatInt(bid.LotID),
		bid.BidderID,
		formatInt(bid.Amount),
		formatTimestamp(&ts),
	}
}
