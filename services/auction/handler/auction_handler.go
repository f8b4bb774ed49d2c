package handler

import (
	"context"
	"fmt"
	"net/http"

	auction "auction-service/internal/auctionService"
	model "auction-service/internal/models"
	"auction-service/services/auction/helpers"
	"auction-service/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	List(ctx context.Context, date string) ([]model.Auction, error)
	GetByID(ctx context.Context, id string) (model.Auction, error)
	Create(ctx context.Context, cmd auction.CreateAuctionCommand) (model.Auction, error)
	Update(ctx context.Context, id string, cmd auction.UpdateAuctionCommand) (model.Auction, error)
	Delete(ctx context.Context, id string) error
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// ListAuctionsHandler handles GET /auctions?date=
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	date := c.Query("date")

	auctions, err := h.service.List(c.Request.Context(), date)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListAuctionsHandler: error listing auctions", map[string]any{"date": date, "error": err.Error()})
		return
	}

	resp := make([]helpers.AuctionResponse, 0, len(auctions))
	for _, a := range auctions {
		resp = append(resp, helpers.ToAuctionResponse(a))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"date":  date,
		"count": len(resp),
	})
}

// GetAuctionByIDHandler handles GET /auctions/:id
func (h *AuctionHandler) GetAuctionByIDHandler(c *gin.Context) {
	id := c.Param("id")

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionByIDHandler: error retrieving auction", map[string]any{"auction_id": id, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAuctionResponse(a), "auction retrieved successfully")
	helpers.LogSuccess("GetAuctionByIDHandler", "auction retrieved successfully", map[string]any{
		"auction_id": id,
	})
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	cmd := auction.CreateAuctionCommand{
		Make:         req.Make,
		Model:        req.Model,
		Color:        req.Color,
		Mileage:      req.Mileage,
		Year:         req.Year,
		ImageURL:     req.ImageURL,
		ReservePrice: req.ReservePrice,
		AuctionEnd:   req.AuctionEnd,
	}

	a, err := h.service.Create(c.Request.Context(), cmd)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"make":  req.Make,
			"model": req.Model,
			"error": err.Error(),
		})
		return
	}

	c.Header("Location", "/auctions/"+a.ID)
	utils.JSONResponse(c, http.StatusCreated, helpers.ToAuctionResponse(a), "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": a.ID,
		"make":       a.Item.Make,
		"model":      a.Item.Model,
	})
}

// UpdateAuctionHandler handles PUT /auctions/:id
func (h *AuctionHandler) UpdateAuctionHandler(c *gin.Context) {
	id := c.Param("id")

	var req helpers.UpdateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateAuctionHandler", err)
		return
	}

	cmd := auction.UpdateAuctionCommand{
		Make:    req.Make,
		Model:   req.Model,
		Color:   req.Color,
		Mileage: req.Mileage,
		Year:    req.Year,
	}

	a, err := h.service.Update(c.Request.Context(), id, cmd)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("UpdateAuctionHandler: failed to update auction", map[string]any{"auction_id": id, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToAuctionResponse(a), "auction updated successfully")
	helpers.LogSuccess("UpdateAuctionHandler", "auction updated successfully", map[string]any{
		"auction_id": id,
	})
}

// DeleteAuctionHandler handles DELETE /auctions/:id
func (h *AuctionHandler) DeleteAuctionHandler(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("DeleteAuctionHandler: failed to delete auction", map[string]any{"auction_id": id, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "auction deleted successfully")
	helpers.LogSuccess("DeleteAuctionHandler", "auction deleted successfully", map[string]any{
		"auction_id": id,
	})
}
