package auction

import (
	"context"
	"fmt"
	"time"

	"auction-service/internal/auctionerrors"
	"auction-service/internal/bus"
	"auction-service/internal/contracts"
	"auction-service/internal/models"
	"auction-service/internal/repository"
	"auction-service/utils"
)

// placeholderSeller stands in until authentication is wired up.
const placeholderSeller = "test"

// CreateAuctionCommand carries the fields for a new auction listing.
type CreateAuctionCommand struct {
	Make         string
	Model        string
	Color        string
	Mileage      int
	Year         int
	ImageURL     string
	ReservePrice int
	AuctionEnd   time.Time
}

// UpdateAuctionCommand carries a sparse update: nil fields keep their current
// value, non-nil fields overwrite it.
type UpdateAuctionCommand struct {
	Make    *string
	Model   *string
	Color   *string
	Mileage *int
	Year    *int
}

// AuctionService orchestrates read-modify-publish-persist for each auction
// mutation. Every mutation publishes its domain event before the commit is
// attempted; publish success only means local handoff to the bus.
type AuctionService struct {
	store repository.AuctionStore
	bus   bus.Publisher
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(store repository.AuctionStore, publisher bus.Publisher) *AuctionService {
	return &AuctionService{
		store: store,
		bus:   publisher,
	}
}

// List returns all auctions ordered by item make ascending. A non-empty date
// restricts the result to auctions updated strictly after it (RFC 3339, UTC).
func (s *AuctionService) List(ctx context.Context, date string) ([]models.Auction, error) {
	var updatedAfter *time.Time
	if date != "" {
		ts, err := time.Parse(time.RFC3339, date)
		if err != nil {
			return nil, fmt.Errorf("service: %w - %v", auctionerrors.ErrInvalidTimestamp, err)
		}
		utc := ts.UTC()
		updatedAfter = &utc
	}

	auctions, err := s.store.List(ctx, updatedAfter)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}
	return auctions, nil
}

// GetByID returns the auction with its item, or ErrAuctionNotFound.
func (s *AuctionService) GetByID(ctx context.Context, id string) (models.Auction, error) {
	auction, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", id, err)
	}
	return auction, nil
}

// Create builds a new auction from the command, publishes AuctionCreated from
// the in-memory record, then commits the insert. A subscriber can therefore
// observe a creation whose commit later fails; no retraction is published.
func (s *AuctionService) Create(ctx context.Context, cmd CreateAuctionCommand) (models.Auction, error) {
	now := time.Now().UTC()
	auction := models.Auction{
		ID:           utils.GenerateID(),
		Seller:       placeholderSeller,
		ReservePrice: cmd.ReservePrice,
		AuctionStart: now,
		AuctionEnd:   cmd.AuctionEnd,
		CreatedAt:    now,
		UpdatedAt:    now,
		Item: models.Item{
			Make:     cmd.Make,
			Model:    cmd.Model,
			Color:    cmd.Color,
			Mileage:  cmd.Mileage,
			Year:     cmd.Year,
			ImageURL: cmd.ImageURL,
		},
	}

	if err := s.bus.Publish(ctx, bus.AuctionCreatedChannel, contracts.CreatedFrom(auction)); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to publish created event for auction %s: %w", auction.ID, err)
	}

	rows, err := s.store.Insert(ctx, auction)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to insert auction %s: %w", auction.ID, err)
	}
	if rows == 0 {
		return models.Auction{}, fmt.Errorf("service: insert auction %s: %w", auction.ID, auctionerrors.ErrSaveFailed)
	}

	return auction, nil
}

// Update loads the auction, applies the sparse merge over the item fields,
// publishes AuctionUpdated from the mutated record, then commits. Zero rows
// affected surfaces as ErrSaveFailed; the event has already been published.
func (s *AuctionService) Update(ctx context.Context, id string, cmd UpdateAuctionCommand) (models.Auction, error) {
	auction, err := s.store.GetByID(ctx, id)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to load auction %s: %w", id, err)
	}

	auction.Item.Make = coalesce(cmd.Make, auction.Item.Make)
	auction.Item.Model = coalesce(cmd.Model, auction.Item.Model)
	auction.Item.Color = coalesce(cmd.Color, auction.Item.Color)
	auction.Item.Mileage = coalesce(cmd.Mileage, auction.Item.Mileage)
	auction.Item.Year = coalesce(cmd.Year, auction.Item.Year)
	auction.UpdatedAt = time.Now().UTC()

	if err := s.bus.Publish(ctx, bus.AuctionUpdatedChannel, contracts.UpdatedFrom(auction)); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to publish updated event for auction %s: %w", id, err)
	}

	rows, err := s.store.Update(ctx, auction)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to update auction %s: %w", id, err)
	}
	if rows == 0 {
		return models.Auction{}, fmt.Errorf("service: update auction %s: %w", id, auctionerrors.ErrSaveFailed)
	}

	return auction, nil
}

// Delete loads the auction, publishes AuctionDeleted carrying only the id,
// then commits the removal. The item is removed with it.
func (s *AuctionService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return fmt.Errorf("service: failed to load auction %s: %w", id, err)
	}

	if err := s.bus.Publish(ctx, bus.AuctionDeletedChannel, contracts.AuctionDeleted{ID: id}); err != nil {
		return fmt.Errorf("service: failed to publish deleted event for auction %s: %w", id, err)
	}

	rows, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("service: failed to delete auction %s: %w", id, err)
	}
	if rows == 0 {
		return fmt.Errorf("service: delete auction %s: %w", id, auctionerrors.ErrSaveFailed)
	}

	return nil
}

// coalesce is the single merge reducer for sparse updates: a nil field keeps
// the current value.
func coalesce[T any](v *T, current T) T {
	if v != nil {
		return *v
	}
	return current
}
