package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sggmico/skitchen/internal/auth"
	"github.com/sggmico/skitchen/internal/cart"
	"github.com/sggmico/skitchen/internal/catalog"
	"github.com/sggmico/skitchen/internal/config"
	"github.com/sggmico/skitchen/internal/gateway"
	"github.com/sggmico/skitchen/internal/handlers"
	"github.com/sggmico/skitchen/internal/metrics"
	"github.com/sggmico/skitchen/internal/middleware"
	"github.com/sggmico/skitchen/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting menu server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"backend", cfg.Backend.Driver,
		"log_level", cfg.LogLevel,
	)

	// Select the persistence backend
	gw, closeGW, err := openGateway(cfg, log)
	if err != nil {
		log.Error("failed to open persistence backend", "error", err)
		os.Exit(1)
	}
	if closeGW != nil {
		defer closeGW()
	}
	gw = metrics.InstrumentGateway(gw)

	// Load the catalog: remote first, then cached snapshot, then the
	// bundled default menu. The store is never left empty.
	cache := catalog.NewFileCache(cfg.Cache.Path)
	store := catalog.NewStore(gw, cache, log)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	result := store.Load(loadCtx)
	loadCancel()
	log.Info("catalog loaded",
		"dishes", len(store.Dishes()),
		"dish_source", result.Dishes,
		"categories", len(store.Categories()),
		"category_source", result.Categories,
	)

	// Session carts
	carts := cart.NewManager()

	// Access gate
	verifier := auth.NewVerifier(cfg.Auth.SessionSecret)
	identity := auth.NewClient(cfg.Auth.BaseURL, cfg.Auth.APIKey)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	menuHandler := handlers.NewMenuHandler(store, log)
	cartHandler := handlers.NewCartHandler(carts, store, log)
	adminHandler := handlers.NewAdminHandler(store, log)
	authHandler := handlers.NewAuthHandler(identity, verifier, log)
	eventsHandler := handlers.NewEventsHandler(store, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(metrics.Middleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check and metrics endpoints
	r.Get("/health", healthHandler.ServeHTTP)
	r.Handle("/metrics", metrics.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Menu views
		r.Get("/menu", menuHandler.GetMenu)
		r.Get("/categories", menuHandler.ListCategories)
		r.Get("/dishes", menuHandler.ListDishes)

		// Catalog change feed
		r.Get("/events", eventsHandler.ServeHTTP)

		// Session carts
		r.Post("/cart", cartHandler.CreateCart)
		r.Route("/cart/{cartId}", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{dishId}", cartHandler.SetQuantity)
			r.Delete("/items/{dishId}", cartHandler.RemoveItem)
			r.Get("/order", cartHandler.GetOrder)
		})

		// Admin session
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/session", authHandler.Session)

		// Admin mutations, gated behind an active session
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireSession(verifier))

			r.Get("/dishes", adminHandler.ListDishes)
			r.Post("/dishes", adminHandler.CreateDish)
			r.Put("/dishes/{dishId}", adminHandler.UpdateDish)
			r.Delete("/dishes/{dishId}", adminHandler.DeleteDish)

			r.Post("/categories", adminHandler.CreateCategory)
			r.Put("/categories/{categoryId}", adminHandler.UpdateCategory)
			r.Delete("/categories/{categoryId}", adminHandler.DeleteCategory)
			r.Post("/categories/reorder", adminHandler.ReorderCategories)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// openGateway builds the configured persistence backend. The returned close
// function is nil for backends with nothing to release.
func openGateway(cfg *config.Config, log *slog.Logger) (gateway.Gateway, func(), error) {
	switch cfg.Backend.Driver {
	case "rest":
		return gateway.NewREST(cfg.Backend.RESTBaseURL, cfg.Backend.RESTAPIKey), nil, nil
	case "sqlite":
		gw, err := gateway.OpenSQLite(cfg.Backend.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := gw.Close(); err != nil {
				log.Warn("failed to close sqlite backend", "error", err)
			}
		}
		return gw, closeFn, nil
	default:
		// Demo mode: in-memory backend seeded with the bundled menu.
		return gateway.NewMemory(catalog.DefaultCategories(), catalog.DefaultDishes()), nil, nil
	}
}
