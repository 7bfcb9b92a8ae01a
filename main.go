package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"restaurant-admin/config"
	"restaurant-admin/geocode"
	"restaurant-admin/handlers"
	"restaurant-admin/middleware"
	"restaurant-admin/realtime"
	"restaurant-admin/routes"
	"restaurant-admin/statemachine"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	// Set Gin mode
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := cfg.OpenStore(ctx)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close(context.Background())
	log.Printf("✅ Database (%s) connected and migrated successfully", cfg.DBDriver)

	tokens := middleware.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	policy := statemachine.ParsePolicy(cfg.StrictTransitions)
	h := handlers.New(db, tokens, realtime.NewHub(), policy)
	h.SetGeocoder(geocode.NewNominatim(cfg.GeocoderURL, cfg.GeocoderUserAgent))

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSOrigins))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Restaurant Admin API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍽️ Welcome to the Restaurant Admin API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"policy":  policy,
		})
	})

	// Register all routes
	routes.SetupRoutes(r, h, tokens)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
