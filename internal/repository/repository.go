package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"auction-service/internal/auctionerrors"
	model "auction-service/internal/models"
)

// AuctionStore defines the auction storage interface. Mutating methods commit
// the change and report how many rows were affected; zero means the change
// was not applied.
type AuctionStore interface {
	List(ctx context.Context, updatedAfter *time.Time) ([]model.Auction, error)
	GetByID(ctx context.Context, id string) (model.Auction, error)
	Insert(ctx context.Context, auction model.Auction) (int64, error)
	Update(ctx context.Context, auction model.Auction) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// MemoryStore is a concurrency-safe in-memory implementation of AuctionStore
type MemoryStore struct {
	mu       sync.RWMutex
	auctions map[string]model.Auction // key: auction ID
	order    []string                 // insertion order, keeps List stable for equal makes
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		auctions: make(map[string]model.Auction),
	}
}

// List returns all auctions ordered by item make ascending. When updatedAfter
// is set, only auctions with UpdatedAt strictly greater are returned.
func (s *MemoryStore) List(ctx context.Context, updatedAfter *time.Time) ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	auctions := make([]model.Auction, 0, len(s.order))
	for _, id := range s.order {
		a, ok := s.auctions[id]
		if !ok {
			continue
		}
		if updatedAfter != nil && !a.UpdatedAt.After(*updatedAfter) {
			continue
		}
		auctions = append(auctions, a)
	}

	sort.SliceStable(auctions, func(i, j int) bool {
		return auctions[i].Item.Make < auctions[j].Item.Make
	})

	return auctions, nil
}

// GetByID returns the auction matching id
func (s *MemoryStore) GetByID(ctx context.Context, id string) (model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.auctions[id]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	return a, nil
}

// Insert adds a new auction and returns the number of rows affected
func (s *MemoryStore) Insert(ctx context.Context, auction model.Auction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.auctions[auction.ID]; exists {
		return 0, nil
	}
	s.auctions[auction.ID] = auction
	s.order = append(s.order, auction.ID)
	return 1, nil
}

// Update replaces an existing auction row. Last commit wins; there is no
// optimistic-concurrency token.
func (s *MemoryStore) Update(ctx context.Context, auction model.Auction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.auctions[auction.ID]; !exists {
		return 0, nil
	}
	s.auctions[auction.ID] = auction
	return 1, nil
}

// Delete removes the auction (and with it its item) by id
func (s *MemoryStore) Delete(ctx context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.auctions[id]; !exists {
		return 0, nil
	}
	delete(s.auctions, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return 1, nil
}
