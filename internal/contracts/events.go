// Package contracts holds the event shapes shared between this service and
// its subscribers. Field names and JSON tags are the wire contract; publisher
// and consumers must use these types rather than redeclaring them.
package contracts

import (
	"time"

	model "auction-service/internal/models"
)

// ArgumentException is the exception-type classifier reported by downstream
// consumers when an event field fails their argument validation. It is the
// only classifier the remediation path recognizes.
const ArgumentException = "ArgumentException"

// AuctionCreated announces a new auction with its full flattened view.
type AuctionCreated struct {
	ID             string    `json:"id"`
	Seller         string    `json:"seller"`
	ReservePrice   int       `json:"reserve_price"`
	CurrentHighBid int       `json:"current_high_bid"`
	AuctionStart   time.Time `json:"auction_start"`
	AuctionEnd     time.Time `json:"auction_end"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Make           string    `json:"make"`
	Model          string    `json:"model"`
	Color          string    `json:"color"`
	Mileage        int       `json:"mileage"`
	Year           int       `json:"year"`
	ImageURL       string    `json:"image_url"`
}

// AuctionUpdated announces a change to the mutable item fields of an auction.
type AuctionUpdated struct {
	ID      string `json:"id"`
	Make    string `json:"make"`
	Model   string `json:"model"`
	Color   string `json:"color"`
	Mileage int    `json:"mileage"`
	Year    int    `json:"year"`
}

// AuctionDeleted announces the removal of an auction, carrying only its id.
type AuctionDeleted struct {
	ID string `json:"id"`
}

// ExceptionInfo describes one failure reported by a consumer that rejected an
// event. ExceptionType is the classifier remediation dispatches on.
type ExceptionInfo struct {
	ExceptionType string `json:"exception_type"`
	Message       string `json:"message"`
}

// AuctionUpdatedFault wraps an AuctionUpdated event that a consumer failed to
// process, together with the ordered, non-empty list of failures.
type AuctionUpdatedFault struct {
	Message    AuctionUpdated  `json:"message"`
	Exceptions []ExceptionInfo `json:"exceptions"`
}

// CreatedFrom builds the AuctionCreated event from the in-memory record.
func CreatedFrom(a model.Auction) AuctionCreated {
	return AuctionCreated{
		ID:             a.ID,
		Seller:         a.Seller,
		ReservePrice:   a.ReservePrice,
		CurrentHighBid: a.CurrentHighBid,
		AuctionStart:   a.AuctionStart,
		AuctionEnd:     a.AuctionEnd,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		Make:           a.Item.Make,
		Model:          a.Item.Model,
		Color:          a.Item.Color,
		Mileage:        a.Item.Mileage,
		Year:           a.Item.Year,
		ImageURL:       a.Item.ImageURL,
	}
}

// UpdatedFrom builds the AuctionUpdated event from the mutated in-memory record.
func UpdatedFrom(a model.Auction) AuctionUpdated {
	return AuctionUpdated{
		ID:      a.ID,
		Make:    a.Item.Make,
		Model:   a.Item.Model,
		Color:   a.Item.Color,
		Mileage: a.Item.Mileage,
		Year:    a.Item.Year,
	}
}
