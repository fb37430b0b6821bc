package server

import (
	"auction-ledger/internal/config"
	handler "auction-ledger/services/auction/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(cfg *config.Config, auctionService handler.AuctionServiceInterface, catalogService handler.CatalogServiceInterface, resolver handler.NameResolver) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestIDMiddleware)     // correlation id per request
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(auctionService, resolver)
	adminHandler := handler.NewAdminHandler(catalogService)

	bids := router.Group("/bids")
	{
		bids.POST("", auctionHandler.PlaceBidHandler)
	}

	lots := router.Group("/lots")
	{
		lots.GET("", auctionHandler.ListLotsHandler)
		lots.GET("/:lot_id", auctionHandler.GetLotHandler)
		lots.GET("/:lot_id/bids", auctionHandler.RecentBidsHandler)
	}

	bidders := router.Group("/bidders")
	{
		bidders.GET("/:bidder_id/bids", auctionHandler.BidderHistoryHandler)
		bidders.GET("/:bidder_id/has-bids", auctionHandler.HasBidsHandler)
	}

	admin := router.Group("/admin", AdminAuthMiddleware(cfg.AdminToken))
	{
		admin.POST("/lots", adminHandler.CreateLotHandler)
		admin.PUT("/lots/:lot_id", adminHandler.UpdateLotHandler)
		admin.DELETE("/lots/:lot_id", adminHandler.DeleteLotHandler)
		admin.POST("/lots/:lot_id/unsold", adminHandler.MarkUnsoldHandler)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
