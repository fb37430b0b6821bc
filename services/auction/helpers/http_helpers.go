package helpers

import (
	"errors"
	"net/http"
	"time"

	"auction-ledger/internal/auctionerrors"
	"auction-ledger/internal/models"
	"auction-ledger/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	utils.JSONError(c, http.StatusBadRequest, "INVALID_PAYLOAD", "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps ledger errors to an HTTP status, an error code and a
// user-safe message. Business errors surface their own code and message;
// everything else gets a generic retry message.
func MapErrorToHTTP(err error) (int, string, string) {
	if be, ok := auctionerrors.AsBusiness(err); ok {
		switch be.Code {
		case auctionerrors.CodeProductNotFound:
			return http.StatusNotFound, string(be.Code), be.Message
		case auctionerrors.CodeForbiddenAction:
			return http.StatusForbidden, string(be.Code), be.Message
		default:
			return http.StatusBadRequest, string(be.Code), be.Message
		}
	}
	if errors.Is(err, auctionerrors.ErrLockTimeout) {
		return http.StatusServiceUnavailable, "BUSY", "system busy, please retry"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", "internal error, please retry later"
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// FormatTime renders an optional time as RFC3339, or "".
func FormatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// ParseRequestTime parses an RFC3339 request field; empty means unset.
func ParseRequestTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ToLotResponse converts a lot for the wire. bidIncrement and winnerName
// are optional enrichments supplied by the handler.
func ToLotResponse(lot models.Lot, winnerName string, bidIncrement int64) LotResponse {
	return LotResponse{
		ID:              lot.ID,
		Name:            lot.Name,
		StartPrice:      lot.StartPrice,
		CurrentPrice:    lot.CurrentPrice,
		Status:          string(lot.Status),
		StartTime:       FormatTime(lot.StartTime),
		EndTime:         FormatTime(lot.EndTime),
		LastBidTime:     FormatTime(lot.LastBidTime),
		Brand:           lot.Brand,
		Description:     lot.Description,
		BidsCount:       lot.BidsCount,
		HighestBidderID: lot.HighestBidderID,
		WinnerName:      winnerName,
		BidIncrement:    bidIncrement,
	}
}

// BidIncrement is the suggested raise step shown next to a lot: a tenth
// of the start price, rounded up, never below 1.
func BidIncrement(startPrice int64) int64 {
	if startPrice <= 0 {
		return 1
	}
	inc := (startPrice + 9) / 10
	if inc < 1 {
		inc = 1
	}
	return inc
}
