package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"auction-ledger/internal/models"
	"auction-ledger/services/auction/helpers"
	"auction-ledger/utils"

	"github.com/gin-gonic/gin"
)

// detailBidLimit bounds how many recent bids ship with a lot detail.
const detailBidLimit = 10

//go:generate mockgen -source=auction_handler.go -destination=mock_auction_handler.go -package=handler

type AuctionServiceInterface interface {
	PlaceBid(ctx context.Context, lotID int64, bidderID string, amount int64) (models.BidResult, error)
	GetLot(lotID int64) (*models.Lot, error)
	ListLots() ([]models.Lot, error)
	RecentBids(lotID int64, limit int) ([]models.Bid, error)
	BidsByBidder(bidderID string) ([]models.LotHistory, error)
	HasBids(bidderID string) (bool, error)
}

// NameResolver resolves a bidder id to a display name.
type NameResolver interface {
	ResolveName(employeeID string) string
}

type AuctionHandler struct {
	service  AuctionServiceInterface
	resolver NameResolver
}

func NewAuctionHandler(service AuctionServiceInterface, resolver NameResolver) *AuctionHandler {
	return &AuctionHandler{service: service, resolver: resolver}
}

// PlaceBidHandler handles POST /bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	result, err := h.service.PlaceBid(c.Request.Context(), req.LotID, req.BidderID, req.Amount)
	if err != nil {
		status, code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, code, message)
		logFn := utils.Error
		if status < http.StatusInternalServerError {
			logFn = utils.Warn
		}
		logFn("PlaceBidHandler: bid not accepted", map[string]any{
			"lot_id":    req.LotID,
			"bidder_id": req.BidderID,
			"amount":    req.Amount,
			"code":      code,
			"error":     err.Error(),
		})
		return
	}

	resp := helpers.BidResultResponse{
		BidID:        result.BidID,
		NewPrice:     result.NewPrice,
		Timestamp:    result.Timestamp.Format(time.RFC3339),
		TimeExtended: result.TimeExtended,
		NewEndTime:   helpers.FormatTime(result.NewEndTime),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":        result.BidID,
		"lot_id":        req.LotID,
		"bidder_id":     req.BidderID,
		"new_price":     result.NewPrice,
		"time_extended": result.TimeExtended,
	})
}

// ListLotsHandler handles GET /lots
func (h *AuctionHandler) ListLotsHandler(c *gin.Context) {
	lots, err := h.service.ListLots()
	if err != nil {
		status, code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, code, message)
		utils.Error("ListLotsHandler: error listing lots", map[string]any{"error": err.Error()})
		return
	}

	counts := map[string]int{"Open": 0, "Upcoming": 0, "Closed": 0}
	resp := make([]helpers.LotResponse, 0, len(lots))
	for _, lot := range lots {
		switch lot.Status {
		case models.StatusOpen:
			counts["Open"]++
		case models.StatusUpcoming:
			counts["Upcoming"]++
		default:
			counts["Closed"]++
		}
		winner := ""
		if finished(lot.Status) && lot.HighestBidderID != "" {
			winner = h.resolver.ResolveName(lot.HighestBidderID)
		}
		resp = append(resp, helpers.ToLotResponse(lot, winner, 0))
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{
		"lots":          resp,
		"status_counts": counts,
	}, "lots retrieved successfully")
}

// GetLotHandler handles GET /lots/:lot_id
func (h *AuctionHandler) GetLotHandler(c *gin.Context) {
	lotID, ok := parseLotID(c)
	if !ok {
		return
	}

	lot, err := h.service.GetLot(lotID)
	if err != nil {
		status, code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, code, message)
		utils.Error("GetLotHandler: error loading lot", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}
	if lot == nil {
		utils.JSONError(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "lot not found")
		return
	}

	bids, err := h.service.RecentBids(lotID, detailBidLimit)
	if err != nil {
		status, code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, code, message)
		utils.Error("GetLotHandler: error loading bids", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}

	winner := ""
	if finished(lot.Status) && lot.HighestBidderID != "" {
		winner = h.resolver.ResolveName(lot.HighestBidderID)
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{
		"lot":         helpers.ToLotResponse(*lot, winner, helpers.BidIncrement(lot.StartPrice)),
		"recent_bids": h.toBidResponses(bids),
	}, "lot retrieved successfully")
}

// RecentBidsHandler handles GET /lots/:lot_id/bids
func (h *AuctionHandler) RecentBidsHandler(c *gin.Context) {
	lotID, ok := parseLotID(c)
	if !ok {
		return
	}
	limit := detailBidLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	bids, err := h.service.RecentBids(lotID, limit)
	if err != nil {
		status, code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, code, message)
		utils.Error("RecentBidsHandler: error loading bids", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, h.toBidResponses(bids), "bids retrieved successfully")
}

// BidderHistoryHandler handles GET /bidders/:bidder_id/bids
func (h *AuctionHandler) BidderHistoryHandler(c *gin.Context) {
	bidderID := c.Param("bidder_id")
	history, err := h.service.BidsByBidder(bidderID)
	if err != nil {
		status, code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, code, message)
		utils.Error("BidderHistoryHandler: error loading history", map[string]any{"bidder_id": bidderID, "error": err.Error()})
		return
	}
	if history == nil {
		history = []models.LotHistory{}
	}

	utils.JSONResponse(c, http.StatusOK, history, "bid history retrieved successfully")
	helpers.LogSuccess("BidderHistoryHandler", "bid history retrieved successfully", map[string]any{
		"bidder_id":  bidderID,
		"lots_count": len(history),
	})
}

// HasBidsHandler handles GET /bidders/:bidder_id/has-bids. The web layer
// uses it to decide whether to show the first-bid confirmation prompt.
func (h *AuctionHandler) HasBidsHandler(c *gin.Context) {
	bidderID := c.Param("bidder_id")
	hasBids, err := h.service.HasBids(bidderID)
	if err != nil {
		// A read failure here should not block the bid flow; report as a
		// first bid, which only adds a confirmation step.
		utils.Warn("HasBidsHandler: error checking bid history", map[string]any{"bidder_id": bidderID, "error": err.Error()})
		hasBids = false
	}
	utils.JSONResponse(c, http.StatusOK, gin.H{"has_bids": hasBids}, "bid presence checked")
}

func (h *AuctionHandler) toBidResponses(bids []models.Bid) []helpers.BidResponse {
	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, helpers.BidResponse{
			BidID:      b.ID,
			LotID:      b.LotID,
			BidderID:   b.BidderID,
			BidderName: h.resolver.ResolveName(b.BidderID),
			Amount:     b.Amount,
			Timestamp:  b.Timestamp.Format(time.RFC3339),
		})
	}
	return resp
}

func finished(s models.Status) bool {
	return s == models.StatusClosed || s == models.StatusUnsold
}

func parseLotID(c *gin.Context) (int64, bool) {
	lotID, err := strconv.ParseInt(c.Param("lot_id"), 10, 64)
	if err != nil || lotID <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid lot id")
		return 0, false
	}
	return lotID, true
}
