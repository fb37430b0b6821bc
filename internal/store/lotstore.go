package store

import (
	"context"
	"path/filepath"
	"time"

	"auction-ledger/internal/models"
	"auction-ledger/utils"
)

// lotHeader is the canonical column order of the lot dataset.
var lotHeader = []string{
	"id", "name", "start_price", "current_price", "status",
	"start_time", "end_time", "last_bid_time",
	"brand", "description", "bids_count", "highest_bidder_id",
}

// LotStore owns the lot dataset. All bid-path mutations go through
// Acquire/Commit; list and detail reads use Load.
type LotStore struct {
	fs  *fileStore
	loc *time.Location
}

// NewLotStore opens (creating if absent) the lot dataset under dataDir.
func NewLotStore(dataDir string, lockTimeout time.Duration, loc *time.Location) (*LotStore, error) {
	fs, err := newFileStore(filepath.Join(dataDir, "products.csv"), lotHeader, lockTimeout)
	if err != nil {
		return nil, err
	}
	return &LotStore{fs: fs, loc: loc}, nil
}

// Acquire locks the dataset and returns its fully parsed contents.
func (s *LotStore) Acquire(ctx context.Context) ([]models.Lot, *ReleaseToken, error) {
	rows, tok, err := s.fs.acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	return s.decodeRows(rows), tok, nil
}

// Commit rewrites the dataset with lots and releases the lock.
func (s *LotStore) Commit(tok *ReleaseToken, lots []models.Lot) error {
	rows := make([][]string, 0, len(lots))
	for _, lot := range lots {
		rows = append(rows, s.encodeRow(lot))
	}
	return s.fs.commit(tok, rows)
}

// Load reads the dataset without locking.
func (s *LotStore) Load() ([]models.Lot, error) {
	rows, err := s.fs.read()
	if err != nil {
		return nil, err
	}
	return s.decodeRows(rows), nil
}

func (s *LotStore) decodeRows(rows [][]string) []models.Lot {
	lots := make([]models.Lot, 0, len(rows))
	for _, row := range rows {
		lot, ok := s.decodeRow(row)
		if !ok {
			utils.Warn("skipping malformed lot row", map[string]any{
				"dataset": s.fs.path,
				"row":     row,
			})
			continue
		}
		lots = append(lots, lot)
	}
	return lots
}

func (s *LotStore) decodeRow(row []string) (models.Lot, bool) {
	if len(row) < len(lotHeader) {
		return models.Lot{}, false
	}
	id, ok := parseIntField(row[0])
	if !ok {
		return models.Lot{}, false
	}
	startPrice, ok := parseIntField(row[2])
	if !ok {
		return models.Lot{}, false
	}
	// A blank current price means no bid has repriced the lot yet.
	currentPrice, ok := parseIntField(row[3])
	if !ok {
		currentPrice = startPrice
	}
	bidsCount, _ := parseIntField(row[10])

	return models.Lot{
		ID:              id,
		Name:            row[1],
		StartPrice:      startPrice,
		CurrentPrice:    currentPrice,
		Status:          models.Status(row[4]),
		StartTime:       parseTimestamp(row[5], s.loc),
		EndTime:         parseTimestamp(row[6], s.loc),
		LastBidTime:     parseTimestamp(row[7], s.loc),
		Brand:           row[8],
		Description:     row[9],
		BidsCount:       bidsCount,
		HighestBidderID: row[11],
	}, true
}

func (s *LotStore) encodeRow(lot models.Lot) []string {
	return []string{
		formatInt(lot.ID),
		lot.Name,
		formatInt(lot.StartPrice),
		formatInt(lot.CurrentPrice),
		string(lot.Status),
		formatTimestamp(lot.StartTime),
		formatTimestamp(lot.EndTime),
		formatTimestamp(lot.LastBidTime),
		lot.Brand,
		lot.Description,
		formatInt(lot.BidsCount),
		lot.HighestBidderID,
	}
}
