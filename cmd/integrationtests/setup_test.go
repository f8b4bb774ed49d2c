package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	auction "auction-service/internal/auctionService"
	"auction-service/internal/bus"
	model "auction-service/internal/models"
	"auction-service/internal/repository"
	"auction-service/internal/server"

	"github.com/gin-gonic/gin"
)

// testEnv bundles the router with the fakes behind it so tests can observe
// both the persisted rows and the published events.
type testEnv struct {
	router *gin.Engine
	store  *repository.MemoryStore
	bus    *bus.MemoryBus
}

// SetupTestEnv initializes the router with in-memory store and bus for
// integration testing, optionally seeded with auctions.
func SetupTestEnv(t *testing.T, seeds ...model.Auction) *testEnv {
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	eventBus := bus.NewMemoryBus()

	for _, a := range seeds {
		if _, err := store.Insert(context.Background(), a); err != nil {
			t.Fatalf("failed to seed auction %s: %v", a.ID, err)
		}
	}

	service := auction.NewAuctionService(store, eventBus)
	router := server.SetupRouter(service)

	return &testEnv{router: router, store: store, bus: eventBus}
}

// ExecuteRequestAndParse executes an HTTP request on the router and parses
// the JSON response envelope.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}

// seedAuction builds an auction for seeding the store directly.
func seedAuction(id, carMake, carModel string, updatedAt time.Time) model.Auction {
	return model.Auction{
		ID:           id,
		Seller:       "test",
		ReservePrice: 10000,
		AuctionStart: updatedAt,
		AuctionEnd:   updatedAt.Add(7 * 24 * time.Hour),
		CreatedAt:    updatedAt,
		UpdatedAt:    updatedAt,
		Item: model.Item{
			Make:    carMake,
			Model:   carModel,
			Color:   "Red",
			Mileage: 30000,
			Year:    2021,
		},
	}
}
