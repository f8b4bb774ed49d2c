package helpers

import (
	"time"

	model "auction-service/internal/models"
)

// Request/Response DTOs
type CreateAuctionRequest struct {
	Make         string    `json:"make" binding:"required"`
	Model        string    `json:"model" binding:"required"`
	Color        string    `json:"color" binding:"required"`
	Mileage      int       `json:"mileage" binding:"required,gt=0"`
	Year         int       `json:"year" binding:"required,gt=0"`
	ImageURL     string    `json:"image_url"`
	ReservePrice int       `json:"reserve_price"`
	AuctionEnd   time.Time `json:"auction_end"`
}

// UpdateAuctionRequest is a sparse update: absent fields keep their value.
type UpdateAuctionRequest struct {
	Make    *string `json:"make"`
	Model   *string `json:"model"`
	Color   *string `json:"color"`
	Mileage *int    `json:"mileage"`
	Year    *int    `json:"year"`
}

// AuctionResponse is the flattened auction view returned to callers.
type AuctionResponse struct {
	ID             string `json:"id"`
	Seller         string `json:"seller"`
	ReservePrice   int    `json:"reserve_price"`
	CurrentHighBid int    `json:"current_high_bid"`
	AuctionStart   string `json:"auction_start"`
	AuctionEnd     string `json:"auction_end"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
	Make           string `json:"make"`
	Model          string `json:"model"`
	Color          string `json:"color"`
	Mileage        int    `json:"mileage"`
	Year           int    `json:"year"`
	ImageURL       string `json:"image_url"`
}

// ToAuctionResponse flattens an auction with its item into the response view
func ToAuctionResponse(a model.Auction) AuctionResponse {
	return AuctionResponse{
		ID:             a.ID,
		Seller:         a.Seller,
		ReservePrice:   a.ReservePrice,
		CurrentHighBid: a.CurrentHighBid,
		AuctionStart:   a.AuctionStart.UTC().Format(time.RFC3339),
		AuctionEnd:     a.AuctionEnd.UTC().Format(time.RFC3339),
		CreatedAt:      a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.UTC().Format(time.RFC3339),
		Make:           a.Item.Make,
		Model:          a.Item.Model,
		Color:          a.Item.Color,
		Mileage:        a.Item.Mileage,
		Year:           a.Item.Year,
		ImageURL:       a.Item.ImageURL,
	}
}
