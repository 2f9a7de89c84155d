package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"metalmart-gateway/internal/core/cache"
	"metalmart-gateway/internal/core/config"
	"metalmart-gateway/internal/core/logger"
	"metalmart-gateway/internal/core/server"
	cartHandler "metalmart-gateway/internal/features/cart/handler"
	cartService "metalmart-gateway/internal/features/cart/service"
	catalogAdapters "metalmart-gateway/internal/features/catalog/adapters"
	catalogHandler "metalmart-gateway/internal/features/catalog/handler"
	catalogService "metalmart-gateway/internal/features/catalog/service"
	checkoutAdapters "metalmart-gateway/internal/features/checkout/adapters"
	checkoutHandler "metalmart-gateway/internal/features/checkout/handler"
	checkoutService "metalmart-gateway/internal/features/checkout/service"
	trackingAdapters "metalmart-gateway/internal/features/tracking/adapters"
	trackingHandler "metalmart-gateway/internal/features/tracking/handler"
	trackingService "metalmart-gateway/internal/features/tracking/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// @title MetalMart Gateway API
// @version 1.0
// @description Storefront gateway for the MetalMart demo shop: session carts, catalogue, checkout and live order tracking.
// @contact.name API Support
// @contact.email support@metalmart.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	// Prices and totals serialize as JSON numbers, matching the collaborators.
	decimal.MarshalJSONWithoutQuotes = true

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Redis cache
	redisCache, err := cache.NewRedisAdapter(cfg.Cache.RedisURL)
	if err != nil {
		l.Fatal("Failed to create Redis adapter", zap.Error(err))
	}
	defer redisCache.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisCache.Ping(ctx); err != nil {
		cancel()
		l.Fatal("Redis ping failed", zap.Error(err))
	}
	cancel()
	l.Info("Redis connection verified")

	// Order collaborator health check
	orderAdapter := trackingAdapters.NewOrderAdapter(cfg.Collaborators.OrderURL)
	ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
	if err := orderAdapter.HealthCheck(ctx); err != nil {
		cancel()
		l.Fatal("Order service health check failed", zap.Error(err))
	}
	cancel()
	l.Info("Order service connection verified")

	// Cart
	cartSvc := cartService.NewCartService()
	cartHdl := cartHandler.NewCartHandler(cartSvc)

	// Catalog
	catalogueAdapter := catalogAdapters.NewCatalogueAdapter(cfg.Collaborators.CatalogueURL)
	inventoryAdapter := catalogAdapters.NewInventoryAdapter(cfg.Collaborators.InventoryURL)
	catalogSvc := catalogService.NewCatalogService(catalogueAdapter, inventoryAdapter, redisCache, cfg.Cache.CatalogTTL())
	catalogHdl := catalogHandler.NewCatalogHandler(catalogSvc)

	// Checkout
	checkoutAdapter := checkoutAdapters.NewCheckoutAdapter(cfg.Collaborators.CheckoutURL)
	checkoutSvc := checkoutService.NewCheckoutService(cartSvc, checkoutAdapter)
	checkoutHdl := checkoutHandler.NewCheckoutHandler(checkoutSvc)

	// Tracking
	trackingSvc := trackingService.NewTrackingService(orderAdapter, cfg.Tracking.PollInterval())
	defer trackingSvc.Close()
	trackingHdl := trackingHandler.NewTrackingHandler(trackingSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/api/products/search", catalogHdl.SearchProducts)
	srv.App.Get("/api/products/category/:category", catalogHdl.ProductsByCategory)
	srv.App.Get("/api/products/:id", catalogHdl.GetProduct)
	srv.App.Get("/api/products", catalogHdl.ListProducts)
	srv.App.Get("/api/inventory/:productId", catalogHdl.GetInventory)

	srv.App.Get("/api/cart", cartHdl.GetCart)
	srv.App.Post("/api/cart/items", cartHdl.AddItem)
	srv.App.Put("/api/cart/items/:productId", cartHdl.UpdateQuantity)
	srv.App.Delete("/api/cart", cartHdl.ClearCart)

	srv.App.Post("/api/checkout", checkoutHdl.Checkout)

	srv.App.Get("/api/orders/track/:token", trackingHdl.TrackOrder)
	srv.App.Delete("/api/orders/track/:token", trackingHdl.StopTracking)
	srv.App.Get("/api/orders/:id/confirmation", trackingHdl.ConfirmOrder)
	srv.App.Delete("/api/orders/:id/confirmation", trackingHdl.StopConfirmation)
	srv.App.Get("/api/orders/:id/status", trackingHdl.GetOrderStatus)
	srv.App.Get("/api/orders/:id", trackingHdl.GetOrder)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		l.Info("Shutdown signal received")
		if err := srv.Shutdown(); err != nil {
			l.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
