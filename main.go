package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	auction "auction-service/internal/auctionService"
	"auction-service/internal/bus"
	"auction-service/internal/consumer"
	model "auction-service/internal/models"
	"auction-service/internal/repository"
	"auction-service/internal/server"
	"auction-service/utils"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx := context.Background()

	store, err := setupStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up store: %v\n", err)
		os.Exit(1)
	}

	publisher, subscriber := setupBus()

	auctionSvc := auction.NewAuctionService(store, publisher)

	faultsConsumer := consumer.NewAuctionUpdatedFaultsConsumer(publisher)
	go func() {
		if err := faultsConsumer.Run(ctx, subscriber); err != nil {
			utils.Error("fault consumer stopped", map[string]any{"error": err.Error()})
		}
	}()

	router := server.SetupRouter(auctionSvc)

	port := getPort()
	fmt.Printf("Starting auction server on %s...\n", port)
	if err := router.Run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// setupStore returns a Postgres store when DATABASE_URL is set, otherwise a
// prepopulated in-memory store.
func setupStore(ctx context.Context) (repository.AuctionStore, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		store := repository.NewMemoryStore()
		prepopulateAuctions(ctx, store)
		return store, nil
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := repository.NewPostgresStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// setupBus returns a Redis bus when REDIS_ADDR is set, otherwise an
// in-process bus.
func setupBus() (bus.Publisher, bus.Subscriber) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		memBus := bus.NewMemoryBus()
		return memBus, memBus
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	redisBus := bus.NewRedisBus(client)
	return redisBus, redisBus
}

// prepopulateAuctions adds sample auctions to the in-memory store
func prepopulateAuctions(ctx context.Context, store *repository.MemoryStore) {
	now := time.Now().UTC()
	samples := []model.Auction{
		{
			ID: utils.GenerateID(), Seller: "alice", ReservePrice: 20000,
			AuctionStart: now, AuctionEnd: now.Add(10 * 24 * time.Hour),
			CreatedAt: now, UpdatedAt: now,
			Item: model.Item{Make: "Ford", Model: "GT", Color: "White", Mileage: 50000, Year: 2020},
		},
		{
			ID: utils.GenerateID(), Seller: "bob", ReservePrice: 90000,
			AuctionStart: now, AuctionEnd: now.Add(60 * 24 * time.Hour),
			CreatedAt: now, UpdatedAt: now,
			Item: model.Item{Make: "Bugatti", Model: "Veyron", Color: "Black", Mileage: 15035, Year: 2018},
		},
		{
			ID: utils.GenerateID(), Seller: "tom", ReservePrice: 0,
			AuctionStart: now, AuctionEnd: now.Add(4 * 24 * time.Hour),
			CreatedAt: now, UpdatedAt: now,
			Item: model.Item{Make: "Ford", Model: "Mustang", Color: "Yellow", Mileage: 65125, Year: 2023},
		},
	}

	for _, a := range samples {
		if _, err := store.Insert(ctx, a); err != nil {
			utils.Warn("failed to prepopulate auction", map[string]any{"auction_id": a.ID, "error": err.Error()})
		}
	}
}

// getPort returns the server port from env or defaults to ":8080"
func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	return ":8080"
}
