package server

import (
	handler "auction-service/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(auctionService handler.AuctionServiceInterface) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(auctionService)

	auctions := router.Group("/auctions")
	{
		auctions.GET("", auctionHandler.ListAuctionsHandler)
		auctions.GET("/:id", auctionHandler.GetAuctionByIDHandler)
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.PUT("/:id", auctionHandler.UpdateAuctionHandler)
		auctions.DELETE("/:id", auctionHandler.DeleteAuctionHandler)
	}

	return router
}
