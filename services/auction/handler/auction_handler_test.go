package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auction-service/internal/auctionerrors"
	auction "auction-service/internal/auctionService"
	model "auction-service/internal/models"
	"auction-service/services/auction/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func sampleAuction(id string) model.Auction {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return model.Auction{
		ID:           id,
		Seller:       "test",
		ReservePrice: 20000,
		AuctionStart: now,
		AuctionEnd:   now.Add(10 * 24 * time.Hour),
		CreatedAt:    now,
		UpdatedAt:    now,
		Item: model.Item{
			Make:    "Ford",
			Model:   "GT",
			Color:   "White",
			Mileage: 50000,
			Year:    2020,
		},
	}
}

func setupHandlerTest(t *testing.T) (*MockAuctionServiceInterface, *gin.Engine) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := NewMockAuctionServiceInterface(ctrl)
	h := NewAuctionHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/auctions", h.ListAuctionsHandler)
	router.GET("/auctions/:id", h.GetAuctionByIDHandler)
	router.POST("/auctions", h.CreateAuctionHandler)
	router.PUT("/auctions/:id", h.UpdateAuctionHandler)
	router.DELETE("/auctions/:id", h.DeleteAuctionHandler)

	return mockService, router
}

func doRequest(t *testing.T, router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// Test ListAuctionsHandler
func TestListAuctionsHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		mockSetup      func(m *MockAuctionServiceInterface)
		expectedStatus int
		expectedCount  int
	}{
		{
			name: "success_no_filter",
			url:  "/auctions",
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().
					List(gomock.Any(), "").
					Return([]model.Auction{sampleAuction("a1"), sampleAuction("a2")}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name: "success_with_date_filter",
			url:  "/auctions?date=2025-06-01T00:00:00Z",
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().
					List(gomock.Any(), "2025-06-01T00:00:00Z").
					Return([]model.Auction{sampleAuction("a1")}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name: "malformed_date_filter",
			url:  "/auctions?date=yesterday",
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().
					List(gomock.Any(), "yesterday").
					Return(nil, fmt.Errorf("service: %w - bad input", auctionerrors.ErrInvalidTimestamp))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService, router := setupHandlerTest(t)
			tc.mockSetup(mockService)

			w := doRequest(t, router, http.MethodGet, tc.url, nil)
			require.Equal(t, tc.expectedStatus, w.Code)

			if tc.expectedStatus == http.StatusOK {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				data := resp["data"].([]any)
				require.Len(t, data, tc.expectedCount)
			}
		})
	}
}

// Test GetAuctionByIDHandler
func TestGetAuctionByIDHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService, router := setupHandlerTest(t)
		mockService.EXPECT().
			GetByID(gomock.Any(), "a1").
			Return(sampleAuction("a1"), nil)

		w := doRequest(t, router, http.MethodGet, "/auctions/a1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]any)
		require.Equal(t, "a1", data["id"])
		require.Equal(t, "Ford", data["make"])
		require.Equal(t, "GT", data["model"])
	})

	t.Run("not_found", func(t *testing.T) {
		mockService, router := setupHandlerTest(t)
		mockService.EXPECT().
			GetByID(gomock.Any(), "missing").
			Return(model.Auction{}, fmt.Errorf("service: %w", auctionerrors.ErrAuctionNotFound))

		w := doRequest(t, router, http.MethodGet, "/auctions/missing", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// Test CreateAuctionHandler
func TestCreateAuctionHandler(t *testing.T) {
	validReq := helpers.CreateAuctionRequest{
		Make:         "Bugatti",
		Model:        "Veyron",
		Color:        "Black",
		Mileage:      15035,
		Year:         2018,
		ReservePrice: 90000,
		AuctionEnd:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("success_sets_location_header", func(t *testing.T) {
		mockService, router := setupHandlerTest(t)

		created := sampleAuction(uuid.NewString())
		created.Item.Make = "Bugatti"
		created.Item.Model = "Veyron"

		mockService.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, cmd auction.CreateAuctionCommand) (model.Auction, error) {
				require.Equal(t, "Bugatti", cmd.Make)
				require.Equal(t, "Veyron", cmd.Model)
				require.Equal(t, 15035, cmd.Mileage)
				return created, nil
			})

		w := doRequest(t, router, http.MethodPost, "/auctions", validReq)
		require.Equal(t, http.StatusCreated, w.Code)
		require.Equal(t, "/auctions/"+created.ID, w.Header().Get("Location"))

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]any)
		require.Equal(t, created.ID, data["id"])
		require.Equal(t, "Bugatti", data["make"])
	})

	t.Run("invalid_json", func(t *testing.T) {
		_, router := setupHandlerTest(t)

		w := doRequest(t, router, http.MethodPost, "/auctions", `{make: "missing quotes"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing_required_fields", func(t *testing.T) {
		_, router := setupHandlerTest(t)

		w := doRequest(t, router, http.MethodPost, "/auctions", map[string]any{"make": "Ford"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("save_failed", func(t *testing.T) {
		mockService, router := setupHandlerTest(t)
		mockService.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(model.Auction{}, fmt.Errorf("service: %w", auctionerrors.ErrSaveFailed))

		w := doRequest(t, router, http.MethodPost, "/auctions", validReq)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, "could not save changes", resp["message"])
	})
}

// Test UpdateAuctionHandler
func TestUpdateAuctionHandler(t *testing.T) {
	t.Run("sparse_body_maps_to_sparse_command", func(t *testing.T) {
		mockService, router := setupHandlerTest(t)

		updated := sampleAuction("a1")
		updated.Item.Color = "Green"

		mockService.EXPECT().
			Update(gomock.Any(), "a1", gomock.Any()).
			DoAndReturn(func(_ any, _ string, cmd auction.UpdateAuctionCommand) (model.Auction, error) {
				require.NotNil(t, cmd.Color)
				require.Equal(t, "Green", *cmd.Color)
				require.Nil(t, cmd.Make)
				require.Nil(t, cmd.Model)
				require.Nil(t, cmd.Mileage)
				require.Nil(t, cmd.Year)
				return updated, nil
			})

		w := doRequest(t, router, http.MethodPut, "/auctions/a1", map[string]any{"color": "Green"})
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not_found", func(t *testing.T) {
		mockService, router := setupHandlerTest(t)
		mockService.EXPECT().
			Update(gomock.Any(), "missing", gomock.Any()).
			Return(model.Auction{}, fmt.Errorf("service: %w", auctionerrors.ErrAuctionNotFound))

		w := doRequest(t, router, http.MethodPut, "/auctions/missing", map[string]any{"color": "Green"})
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// Test DeleteAuctionHandler
func TestDeleteAuctionHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockService, router := setupHandlerTest(t)
		mockService.EXPECT().Delete(gomock.Any(), "a1").Return(nil)

		w := doRequest(t, router, http.MethodDelete, "/auctions/a1", nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not_found", func(t *testing.T) {
		mockService, router := setupHandlerTest(t)
		mockService.EXPECT().
			Delete(gomock.Any(), "missing").
			Return(fmt.Errorf("service: %w", auctionerrors.ErrAuctionNotFound))

		w := doRequest(t, router, http.MethodDelete, "/auctions/missing", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
