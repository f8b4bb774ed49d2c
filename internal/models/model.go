package models

import "time"

// Auction is the aggregate root for a single listing. Its ID is assigned on
// creation and never changes; it is the only key used for lookups.
type Auction struct {
	ID             string    `json:"id"`
	Seller         string    `json:"seller"`
	ReservePrice   int       `json:"reserve_price"`
	CurrentHighBid int       `json:"current_high_bid"`
	AuctionStart   time.Time `json:"auction_start"`
	AuctionEnd     time.Time `json:"auction_end"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Item           Item      `json:"item"`
}

// Item holds the descriptive vehicle attributes of an auction. It is owned
// exclusively by its Auction and shares its lifecycle.
type Item struct {
	Make     string `json:"make"`
	Model    string `json:"model"`
	Color    string `json:"color"`
	Mileage  int    `json:"mileage"`
	Year     int    `json:"year"`
	ImageURL string `json:"image_url"`
}
