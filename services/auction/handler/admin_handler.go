package handler

import (
	"context"
	"net/http"
	"time"

	"auction-ledger/internal/catalog"
	"auction-ledger/services/auction/helpers"
	"auction-ledger/utils"

	"github.com/gin-gonic/gin"
)

type CatalogServiceInterface interface {
	CreateLot(ctx context.Context, params catalog.NewLotParams) (int64, error)
	UpdateLot(ctx context.Context, lotID int64, params catalog.UpdateLotParams) error
	DeleteLot(ctx context.Context, lotID int64) error
	MarkUnsold(ctx context.Context, lotID int64) error
}

// AdminHandler exposes the lot lifecycle to the admin layer. Routes using
// it must sit behind the admin token middleware.
type AdminHandler struct {
	service CatalogServiceInterface
}

func NewAdminHandler(service CatalogServiceInterface) *AdminHandler {
	return &AdminHandler{service: service}
}

// CreateLotHandler handles POST /admin/lots
func (h *AdminHandler) CreateLotHandler(c *gin.Context) {
	var req helpers.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateLotHandler", err)
		return
	}

	startTime, err := helpers.ParseRequestTime(req.StartTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "INVALID_PAYLOAD", "start_time must be RFC3339")
		return
	}
	endTime, err := helpers.ParseRequestTime(req.EndTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "INVALID_PAYLOAD", "end_time must be RFC3339")
		return
	}

	lotID, err := h.service.CreateLot(c.Request.Context(), catalog.NewLotParams{
		Name:        req.Name,
		StartPrice:  req.StartPrice,
		StartTime:   startTime,
		EndTime:     endTime,
		Brand:       req.Brand,
		Description: req.Description,
	})
	if err != nil {
		status, code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, code, message)
		utils.Warn("CreateLotHandler: create failed", map[string]any{"name": req.Name, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, gin.H{"lot_id": lotID}, "lot created successfully")
	helpers.LogSuccess("CreateLotHandler", "lot created successfully", map[string]any{"lot_id": lotID})
}

// UpdateLotHandler handles PUT /admin/lots/:lot_id
func (h *AdminHandler) UpdateLotHandler(c *gin.Context) {
	lotID, ok := parseLotID(c)
	if !ok {
		return
	}
	var req helpers.UpdateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateLotHandler", err)
		return
	}

	params := catalog.UpdateLotParams{
		Name:        req.Name,
		StartPrice:  req.StartPrice,
		Brand:       req.Brand,
		Description: req.Description,
	}
	var err error
	if params.StartTime, err = parseOptionalTime(req.StartTime); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "INVALID_PAYLOAD", "start_time must be RFC3339")
		return
	}
	if params.EndTime, err = parseOptionalTime(req.EndTime); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "INVALID_PAYLOAD", "end_time must be RFC3339")
		return
	}

	if err := h.service.UpdateLot(c.Request.Context(), lotID, params); err != nil {
		status, code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, code, message)
		utils.Warn("UpdateLotHandler: update failed", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"lot_id": lotID}, "lot updated successfully")
	helpers.LogSuccess("UpdateLotHandler", "lot updated successfully", map[string]any{"lot_id": lotID})
}

// DeleteLotHandler handles DELETE /admin/lots/:lot_id
func (h *AdminHandler) DeleteLotHandler(c *gin.Context) {
	lotID, ok := parseLotID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteLot(c.Request.Context(), lotID); err != nil {
		status, code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, code, message)
		utils.Warn("DeleteLotHandler: delete failed", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"lot_id": lotID}, "lot deleted successfully")
	helpers.LogSuccess("DeleteLotHandler", "lot deleted successfully", map[string]any{"lot_id": lotID})
}

// MarkUnsoldHandler handles POST /admin/lots/:lot_id/unsold
func (h *AdminHandler) MarkUnsoldHandler(c *gin.Context) {
	lotID, ok := parseLotID(c)
	if !ok {
		return
	}
	if err := h.service.MarkUnsold(c.Request.Context(), lotID); err != nil {
		status, code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, code, message)
		utils.Warn("MarkUnsoldHandler: mark failed", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"lot_id": lotID}, "lot marked unsold")
	helpers.LogSuccess("MarkUnsoldHandler", "lot marked unsold", map[string]any{"lot_id": lotID})
}

func parseOptionalTime(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	return helpers.ParseRequestTime(*s)
}
